// SPDX-License-Identifier: MIT
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"soundsystem/internal/engine"
	"soundsystem/internal/tui"
)

func newDevicesCmd(opts *options) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List available output devices",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if _, err := opts.load(cmd); err != nil {
				return err
			}
			if err := engine.Initialize(); err != nil {
				return err
			}
			defer func() { err = errors.Join(err, engine.Terminate()) }()

			if plain {
				devices, err := engine.OutputDevices()
				if err != nil {
					return err
				}
				return printDevices(cmd.OutOrStdout(), devices)
			}

			chosen, err := tui.PickOutputDevice()
			if err != nil || chosen == nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "audio:\n  output_device: %d  # %s\n", chosen.ID, chosen.Name)
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the list instead of opening the picker")
	return cmd
}

func printDevices(w io.Writer, devices []engine.Device) error {
	if len(devices) == 0 {
		_, err := fmt.Fprintln(w, "No output devices found.")
		return err
	}
	for _, d := range devices {
		marker := ""
		if d.IsDefault {
			marker = " (default)"
		}
		if _, err := fmt.Fprintf(w, "[%d] %s%s\n    Output channels: %d, Default sample rate: %.0f Hz\n",
			d.ID, d.Name, marker, d.MaxOutputChannels, d.DefaultSampleRate); err != nil {
			return err
		}
	}
	return nil
}
