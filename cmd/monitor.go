// SPDX-License-Identifier: MIT
package cmd

import (
	"context"
	"errors"

	"soundsystem/internal/config"
	"soundsystem/internal/tui"
)

func runMonitor(ctx context.Context, cfg *config.Config, path string) (err error) {
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, p.Close()) }()

	return tui.RunMonitor(ctx, p.engine, p.bridge, p.loop, p.reducer, path, sessionOptions(cfg))
}
