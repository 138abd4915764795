// SPDX-License-Identifier: MIT
package cmd

import (
	"errors"
	"fmt"

	"soundsystem/internal/analysis"
	"soundsystem/internal/app"
	"soundsystem/internal/config"
	"soundsystem/internal/engine"
	"soundsystem/internal/events"
)

// pipeline is the engine side shared by every front end.
type pipeline struct {
	loop    *events.Loop
	bridge  *events.Bridge
	engine  *engine.Engine
	reducer analysis.TraceReducer
}

func newPipeline(cfg *config.Config) (*pipeline, error) {
	mode, err := analysis.ParseMode(cfg.Trace.Mode)
	if err != nil {
		return nil, err
	}
	window, err := analysis.ParseWindowFunc(cfg.Trace.FFTWindow)
	if err != nil {
		return nil, err
	}
	reducer, err := analysis.NewTraceReducer(mode, window)
	if err != nil {
		return nil, err
	}

	if err := engine.Initialize(); err != nil {
		return nil, err
	}
	if _, err := engine.OutputDevice(cfg.Audio.OutputDevice); err != nil {
		return nil, errors.Join(fmt.Errorf("output device: %w", err), engine.Terminate())
	}

	loop := events.NewLoop(cfg.Events.QueueCapacity)
	bridge := events.NewBridge(loop)
	eng := engine.New(bridge, engine.Options{
		DeviceID:        cfg.Audio.OutputDevice,
		FramesPerBuffer: cfg.Audio.FramesPerBuffer,
		LowLatency:      cfg.Audio.LowLatency,
	})

	return &pipeline{loop: loop, bridge: bridge, engine: eng, reducer: reducer}, nil
}

func sessionOptions(cfg *config.Config) app.Options {
	return app.Options{
		Points:        cfg.Trace.Points,
		WindowDivisor: cfg.Trace.WindowDivisor,
	}
}

// Close stops playback, closes the loop and shuts PortAudio down.
func (p *pipeline) Close() error {
	err := p.engine.Close()
	p.loop.Close()
	return errors.Join(err, engine.Terminate())
}
