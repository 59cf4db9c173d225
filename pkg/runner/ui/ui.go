package ui

import (
	"context"
	"io"
	"log/slog"

	"tableflip.dev/stickynote/pkg/store"
	"tableflip.dev/stickynote/pkg/tracker"
	"tableflip.dev/stickynote/pkg/tui/editor"
)

// UI runs the interactive editor together with the tracking engine.
type UI struct {
	Config  store.Config
	Gateway *store.Gateway
	Logger  *slog.Logger
}

func (d *UI) Do(ctx context.Context) error {
	log := d.Logger
	if log == nil {
		// The editor owns the terminal; stray log lines would tear the screen.
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var eng tracker.Engine
	if d.Config != nil {
		eng = tracker.NewExec(d.Config.TrackerCommand())
	}

	maxLength := 0
	if d.Config != nil {
		maxLength = d.Config.MaxLength()
	}

	return editor.Run(ctx, editor.Options{
		Gateway:   d.Gateway,
		MaxLength: maxLength,
		Logger:    log,
		Tracker:   eng,
	})
}
