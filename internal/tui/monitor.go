// SPDX-License-Identifier: MIT
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"soundsystem/internal/analysis"
	"soundsystem/internal/app"
	"soundsystem/internal/events"
	"soundsystem/internal/log"
)

// Eighth-height block elements; index is the filled eighths of a cell.
var barBlocks = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

const (
	chromeRows   = 6 // Title, status and help lines around the trace.
	maxTraceRows = 16
)

var (
	keyToggle = key.NewBinding(key.WithKeys(" "))
	keyStop   = key.NewBinding(key.WithKeys("s"))
)

// MonitorModel shows the engine status and a block-character trace of the
// extracted track in the terminal.
type MonitorModel struct {
	engine  app.Facade
	reducer analysis.TraceReducer
	path    string
	opts    app.Options

	width, height int
	status        string
	playing       bool
	extracted     bool
	samples       []int16
	amps          []float32
	trace         string
	err           error
}

// NewMonitorModel returns a model that extracts path when started.
func NewMonitorModel(engine app.Facade, reducer analysis.TraceReducer, path string, opts app.Options) MonitorModel {
	if opts.WindowDivisor < 1 {
		opts.WindowDivisor = 1
	}
	return MonitorModel{
		engine:  engine,
		reducer: reducer,
		path:    path,
		opts:    opts,
		status:  app.StatusIdle,
	}
}

func (m MonitorModel) Init() tea.Cmd {
	engine, path := m.engine, m.path
	return func() tea.Msg {
		if err := engine.Extract(path); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.retrace()

	case eventMsg:
		m.apply(msg.ev)

	case errMsg:
		m.err = msg.err

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyQuit):
			return m, tea.Quit
		case key.Matches(msg, keyToggle):
			if err := m.engine.Play(!m.engine.IsPlaying()); err != nil {
				m.err = err
			}
		case key.Matches(msg, keyStop):
			if err := m.engine.Stop(); err != nil {
				m.err = err
			}
		}
	}
	return m, nil
}

func (m *MonitorModel) apply(ev events.Event) {
	switch e := ev.(type) {
	case events.ExtractionStarted:
		m.status = app.StatusExtractionStarted
	case events.ExtractionCompleted:
		m.status = app.StatusExtractionCompleted
		samples, err := m.engine.ExtractedSamples()
		if err != nil {
			m.err = err
			return
		}
		m.samples = samples
		m.extracted = true
		m.err = nil
		m.retrace()
	case events.ExtractionFailed:
		m.status = app.StatusExtractionFailed
		m.err = e.Err
	case events.PlaybackStateChanged:
		m.playing = e.Playing
		if e.Playing {
			m.status = app.StatusPlaying
		} else {
			m.status = app.StatusPaused
		}
	case events.TrackEnded:
		m.playing = false
		m.status = app.StatusTrackFinished
	case events.TrackStopped:
		m.playing = false
		m.status = app.StatusTrackStopped
	}
}

func (m MonitorModel) points() int {
	if m.opts.Points > 0 {
		return m.opts.Points
	}
	return m.width
}

func (m MonitorModel) rows() int {
	return min(max(m.height-chromeRows, 1), maxTraceRows)
}

func (m *MonitorModel) retrace() {
	points := m.points()
	if !m.extracted || points <= 0 {
		return
	}
	window := app.TraceWindow(m.samples, m.opts.WindowDivisor, m.reducer.MinSamples(points))
	amps, err := m.reducer.Reduce(m.amps, window, points)
	if err != nil {
		m.err = fmt.Errorf("trace %d samples into %d points: %w", len(window), points, err)
		m.trace = ""
		return
	}
	m.err = nil
	m.amps = amps
	m.trace = renderTrace(amps, m.rows())
}

// Status returns the text for the last engine event.
func (m MonitorModel) Status() string { return m.status }

// Trace returns the rendered trace without styling.
func (m MonitorModel) Trace() string { return m.trace }

func (m MonitorModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.path))
	sb.WriteString("\n\n")

	state := "■"
	if m.playing {
		state = "▶"
	}
	sb.WriteString(highlightStyle.Render(fmt.Sprintf("%s %s", state, m.status)))
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.trace != "" {
		sb.WriteString(traceStyle.Render(m.trace))
	}
	sb.WriteString("\n\n")
	sb.WriteString(infoStyle.Render("Space: Play/Pause • s: Stop • q: Quit"))
	return sb.String()
}

// renderTrace draws one column per amplitude, rows cells high. A column's
// height is |a| of the full height, in eighth-cell steps.
func renderTrace(amps []float32, rows int) string {
	var sb strings.Builder
	sb.Grow(rows * (len(amps)*3 + 1))

	for r := range rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		floor := (rows - 1 - r) * 8
		for _, a := range amps {
			if a < 0 {
				a = -a
			}
			eighths := int(a*float32(rows*8)+0.5) - floor
			sb.WriteString(barBlocks[min(max(eighths, 0), 8)])
		}
	}
	return sb.String()
}

// RunMonitor runs the monitor for path full screen. Engine events reach the
// program through bridge; loop is drained on its own goroutine until the
// program exits.
func RunMonitor(ctx context.Context, engine app.Facade, bridge *events.Bridge, loop *events.Loop,
	reducer analysis.TraceReducer, path string, opts app.Options) error {
	p := tea.NewProgram(NewMonitorModel(engine, reducer, path, opts), tea.WithAltScreen(), tea.WithContext(ctx))

	fwd := NewForwarder(p.Send)
	bridge.AddExtractionObserver(fwd)
	bridge.AddPlaybackObserver(fwd)
	defer func() {
		bridge.RemoveExtractionObserver(fwd)
		bridge.RemovePlaybackObserver(fwd)
	}()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- loop.Run(loopCtx) }()

	_, err := p.Run()
	cancel()
	if lerr := <-done; lerr != nil && !errors.Is(lerr, context.Canceled) {
		log.Warnf("Monitor: event loop: %v", lerr)
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
