// SPDX-License-Identifier: MIT
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"soundsystem/internal/app"
	"soundsystem/internal/config"
	"soundsystem/internal/log"
	"soundsystem/internal/render"
	"soundsystem/internal/render/gles"
)

// runView opens a GL window tracing path. It must run on the main OS thread.
func runView(ctx context.Context, cfg *config.Config, path string) (err error) {
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, p.Close()) }()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	dev, err := gles.New()
	if err != nil {
		return err
	}
	dev.SetClearColor(mgl32.Vec4(cfg.Window.ClearColor))

	opts := render.DefaultOptions()
	opts.Color = mgl32.Vec3(cfg.Trace.Color)
	opts.Width = cfg.Trace.RampWidth
	line, err := render.NewLine(dev, p.reducer, opts)
	if err != nil {
		return err
	}

	session := app.NewSession(p.engine, p.bridge, p.loop, line, sessionOptions(cfg))
	defer session.Close()

	fbWidth, fbHeight := win.GetFramebufferSize()
	session.Resize(fbWidth, fbHeight)
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fbWidth, fbHeight = width, height
		session.Resize(width, height)
	})

	var keyErr error
	win.SetKeyCallback(func(w *glfw.Window, k glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch k {
		case glfw.KeySpace:
			keyErr = session.TogglePlayback()
		case glfw.KeyS:
			keyErr = session.Stop()
		case glfw.KeyEscape, glfw.KeyQ:
			w.SetShouldClose(true)
		}
		if keyErr != nil {
			log.Warnf("View: %v", keyErr)
		}
	})

	if err := session.Open(path); err != nil {
		return err
	}
	log.Infof("View: tracing %s (space: play/pause, s: stop, q: quit)", path)

	for !win.ShouldClose() {
		if ctx.Err() != nil {
			break
		}
		dev.Clear(fbWidth, fbHeight)
		if err := session.Frame(); err != nil {
			return err
		}
		win.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}
