// SPDX-License-Identifier: MIT
package config

// Defaults and limits for every configurable value.
const (
	DefaultLogLevel        = "info"
	DefaultOutputDevice    = MinDeviceID // System default output.
	DefaultFramesPerBuffer = 512         // Balanced latency/performance.
	DefaultLowLatency      = false

	DefaultTraceMode     = "waveform"
	DefaultPoints        = 0  // 0 follows the surface width in pixels (or terminal columns).
	DefaultWindowDivisor = 40 // Only the first 1/40 of a track is traced.
	DefaultFFTWindow     = "hann"
	DefaultRampWidth     = 540 // Pixels over which the red channel ramps up.

	DefaultWindowWidth  = 1080
	DefaultWindowHeight = 540
	DefaultWindowTitle  = "soundsystem"

	DefaultQueueCapacity = 64

	// Hardware and processing limits.
	MinDeviceID      = -1 // -1 represents the system default device.
	MaxBufferFrames  = 8192
	MaxPoints        = 16384
	MaxWindowDivisor = 1 << 16
)

// Stock colours (0..1).
var (
	DefaultColor      = [3]float32{0.63671875, 0.76953125, 0.22265625} // Trace, RGB.
	DefaultClearColor = [4]float32{0, 0, 0, 1}                         // Background, RGBA.
)

// NewConfig returns a Config holding the built-in defaults. LoadConfig starts
// from it before applying the file and environment.
func NewConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Audio: AudioConfig{
			OutputDevice:    DefaultOutputDevice,
			FramesPerBuffer: DefaultFramesPerBuffer,
			LowLatency:      DefaultLowLatency,
		},
		Trace: TraceConfig{
			Mode:          DefaultTraceMode,
			Points:        DefaultPoints,
			WindowDivisor: DefaultWindowDivisor,
			FFTWindow:     DefaultFFTWindow,
			Color:         DefaultColor,
			RampWidth:     DefaultRampWidth,
		},
		Window: WindowConfig{
			Width:      DefaultWindowWidth,
			Height:     DefaultWindowHeight,
			Title:      DefaultWindowTitle,
			ClearColor: DefaultClearColor,
		},
		Events: EventsConfig{
			QueueCapacity: DefaultQueueCapacity,
		},
	}
}
