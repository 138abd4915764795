// SPDX-License-Identifier: MIT
package engine

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Stream is a started or stopped output stream. *portaudio.Stream satisfies it.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

// StreamConfig describes the output stream a track needs.
type StreamConfig struct {
	DeviceID        int
	Channels        int
	SampleRate      float64
	FramesPerBuffer int
	LowLatency      bool
}

// StreamOpener opens an output stream that calls fill from the audio thread
// with an interleaved buffer of FramesPerBuffer*Channels samples to write.
type StreamOpener func(cfg StreamConfig, fill func(out []int16)) (Stream, error)

// OpenPortAudioStream is the StreamOpener used when none is configured.
// PortAudio must be initialized.
func OpenPortAudioStream(cfg StreamConfig, fill func(out []int16)) (Stream, error) {
	device, err := OutputDevice(cfg.DeviceID)
	if err != nil {
		return nil, err
	}
	if cfg.Channels > device.MaxOutputChannels {
		return nil, fmt.Errorf("%w: %s has %d output channels, track needs %d",
			ErrInvalidDevice, device.Name, device.MaxOutputChannels, cfg.Channels)
	}

	latency := device.DefaultHighOutputLatency
	if cfg.LowLatency {
		latency = device.DefaultLowOutputLatency
	}

	params := portaudio.StreamParameters{
		Output: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: cfg.Channels,
			Latency:  latency,
		},
		FramesPerBuffer: cfg.FramesPerBuffer,
		SampleRate:      cfg.SampleRate,
	}

	stream, err := portaudio.OpenStream(params, fill)
	if err != nil {
		return nil, err
	}
	return stream, nil
}
