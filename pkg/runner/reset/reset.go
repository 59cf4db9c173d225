package reset

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/stickynote/pkg/store"
)

// Reset removes the stored note so the next start falls back to the default.
type Reset struct {
	Gateway *store.Gateway
	Out     io.Writer
}

func (r *Reset) Do(_ context.Context) error {
	if err := r.Gateway.Clear(); err != nil {
		return err
	}
	out := r.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "cleared %q\n", r.Gateway.Key())
	return nil
}
