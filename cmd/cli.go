// SPDX-License-Identifier: MIT
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soundsystem/internal/config"
	"soundsystem/internal/log"
	"soundsystem/pkg/build"
)

// options holds the persistent flags. Flags override the configuration file
// only when set on the command line.
type options struct {
	configPath string
	verbose    bool
	points     int
	mode       string
	device     int
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	buildInfo := build.GetBuildFlags()

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         build.Description,
		Version:       buildInfo.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
	}
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "",
		"Path to a YAML configuration file (default ./config.yaml if present)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Show debug output")
	flags.IntVarP(&opts.points, "points", "p", config.DefaultPoints,
		"Points per trace, 0 for one per pixel or terminal column")
	flags.StringVarP(&opts.mode, "mode", "m", config.DefaultTraceMode,
		"Trace mode: waveform or spectrum")
	flags.IntVarP(&opts.device, "device", "d", config.DefaultOutputDevice,
		"Output device ID. Use the 'devices' command to see available devices.")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "view <file>",
			Short: "Open a window tracing the track and play it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := opts.load(cmd)
				if err != nil {
					return err
				}
				return runView(cmd.Context(), cfg, args[0])
			},
		},
		&cobra.Command{
			Use:   "monitor <file>",
			Short: "Trace the track and follow playback in the terminal",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := opts.load(cmd)
				if err != nil {
					return err
				}
				return runMonitor(cmd.Context(), cfg, args[0])
			},
		},
	)
	rootCmd.AddCommand(newDevicesCmd(opts))

	return rootCmd
}

// load reads the configuration, applies explicitly set flags and sets the log
// level.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("points") {
		cfg.Trace.Points = o.points
	}
	if flags.Changed("mode") {
		cfg.Trace.Mode = o.mode
	}
	if flags.Changed("device") {
		cfg.Audio.OutputDevice = o.device
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	log.Debugf("CLI: configuration %+v", *cfg)
	return cfg, nil
}

// Execute runs the command line in os.Args. Commands stop when ctx is
// cancelled.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(os.Args[1:])
	return rootCmd.ExecuteContext(ctx)
}
