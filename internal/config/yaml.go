// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"soundsystem/internal/analysis"
	"soundsystem/internal/log"
)

// Config represents the main application configuration structure, loaded from YAML.
type Config struct {
	LogLevel string       `yaml:"log_level"` // Logging level (e.g., "debug", "info", "warn", "error").
	Audio    AudioConfig  `yaml:"audio"`     // Playback settings.
	Trace    TraceConfig  `yaml:"trace"`     // What the trace shows and how it looks.
	Window   WindowConfig `yaml:"window"`    // GL window used by the view command.
	Events   EventsConfig `yaml:"events"`    // Event loop settings.
}

// AudioConfig holds settings related to audio output.
type AudioConfig struct {
	OutputDevice    int  `yaml:"output_device"`     // PortAudio device index for audio output (-1 for default).
	FramesPerBuffer int  `yaml:"frames_per_buffer"` // Frames handed to each output callback.
	LowLatency      bool `yaml:"low_latency"`       // Request low latency settings from PortAudio device.
}

// TraceConfig holds settings for the reduced sample trace.
type TraceConfig struct {
	Mode          string     `yaml:"mode"`           // "waveform" or "spectrum".
	Points        int        `yaml:"points"`         // Points per trace, 0 for one per pixel/column.
	WindowDivisor int        `yaml:"window_divisor"` // Trace the first len/window_divisor samples.
	FFTWindow     string     `yaml:"fft_window"`     // Window function for spectrum mode (e.g., "hann", "hamming").
	Color         [3]float32 `yaml:"color,flow"`     // RGB in [0, 1].
	RampWidth     float32    `yaml:"ramp_width"`     // Pixels over which the red channel ramps.
}

// WindowConfig holds the initial GL window geometry.
type WindowConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Title      string     `yaml:"title"`
	ClearColor [4]float32 `yaml:"clear_color,flow"` // RGBA background in [0, 1].
}

// EventsConfig holds settings for the UI event loop.
type EventsConfig struct {
	QueueCapacity int `yaml:"queue_capacity"` // Initial capacity of the task queue; it grows on demand.
}

// LoadConfig loads configuration from a YAML file specified by path. If path is empty,
// it searches default locations ("config.yaml"). If no file is found, it uses built-in
// defaults. After loading defaults or from file, it applies environment variable
// overrides and validates the final configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		candidates := []string{"config.yaml"}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Apply environment variable overrides AFTER loading from file.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level '%s' is not a known level", c.LogLevel))
	}

	if c.Audio.OutputDevice < MinDeviceID {
		errs = append(errs, fmt.Errorf("audio.output_device must be >= %d, got %d", MinDeviceID, c.Audio.OutputDevice))
	}
	if c.Audio.FramesPerBuffer <= 0 || c.Audio.FramesPerBuffer > MaxBufferFrames {
		errs = append(errs, fmt.Errorf("audio.frames_per_buffer must be in (0, %d], got %d", MaxBufferFrames, c.Audio.FramesPerBuffer))
	}

	if _, err := analysis.ParseMode(c.Trace.Mode); err != nil {
		errs = append(errs, fmt.Errorf("trace.mode: %w", err))
	}
	if _, err := analysis.ParseWindowFunc(c.Trace.FFTWindow); err != nil {
		errs = append(errs, fmt.Errorf("trace.fft_window: %w", err))
	}
	if c.Trace.Points < 0 || c.Trace.Points > MaxPoints {
		errs = append(errs, fmt.Errorf("trace.points must be in [0, %d], got %d", MaxPoints, c.Trace.Points))
	}
	if c.Trace.WindowDivisor < 1 || c.Trace.WindowDivisor > MaxWindowDivisor {
		errs = append(errs, fmt.Errorf("trace.window_divisor must be in [1, %d], got %d", MaxWindowDivisor, c.Trace.WindowDivisor))
	}
	for i, v := range c.Trace.Color {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("trace.color[%d] must be in [0, 1], got %g", i, v))
		}
	}
	if c.Trace.RampWidth <= 0 {
		errs = append(errs, fmt.Errorf("trace.ramp_width must be positive, got %g", c.Trace.RampWidth))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	for i, v := range c.Window.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("window.clear_color[%d] must be in [0, 1], got %g", i, v))
		}
	}
	if c.Events.QueueCapacity < 0 {
		errs = append(errs, fmt.Errorf("events.queue_capacity must not be negative, got %d", c.Events.QueueCapacity))
	}

	return errors.Join(errs...)
}

// applyEnvOverrides lets ENV_* variables override file values. Unparsable
// values are ignored with a warning.
func (c *Config) applyEnvOverrides() {
	// ENV_LOG_LEVEL
	if val, ok := os.LookupEnv("ENV_LOG_LEVEL"); ok {
		c.LogLevel = val
		log.Debugf("configuration: Overriding log_level from env: %s", val)
	}

	// ENV_OUTPUT_DEVICE
	if val, ok := os.LookupEnv("ENV_OUTPUT_DEVICE"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			c.Audio.OutputDevice = iVal
			log.Debugf("configuration: Overriding audio.output_device from env: %d", iVal)
		} else {
			log.Warnf("configuration: Ignoring ENV_OUTPUT_DEVICE=%q: %v", val, err)
		}
	}

	// ENV_TRACE_{...}
	// These are specific to the trace.

	// ENV_TRACE_MODE
	if val, ok := os.LookupEnv("ENV_TRACE_MODE"); ok {
		c.Trace.Mode = val
		log.Debugf("configuration: Overriding trace.mode from env: %s", val)
	}
	// ENV_TRACE_POINTS
	if val, ok := os.LookupEnv("ENV_TRACE_POINTS"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			c.Trace.Points = iVal
			log.Debugf("configuration: Overriding trace.points from env: %d", iVal)
		} else {
			log.Warnf("configuration: Ignoring ENV_TRACE_POINTS=%q: %v", val, err)
		}
	}
	// ENV_TRACE_WINDOW_DIVISOR
	if val, ok := os.LookupEnv("ENV_TRACE_WINDOW_DIVISOR"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			c.Trace.WindowDivisor = iVal
			log.Debugf("configuration: Overriding trace.window_divisor from env: %d", iVal)
		} else {
			log.Warnf("configuration: Ignoring ENV_TRACE_WINDOW_DIVISOR=%q: %v", val, err)
		}
	}
}
