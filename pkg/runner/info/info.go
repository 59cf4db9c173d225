package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/stickynote/pkg/note"
	"tableflip.dev/stickynote/pkg/store"
)

// Info prints where the note is stored and what is in there.
type Info struct {
	Config  store.Config
	Gateway *store.Gateway
	Raw     bool
	Out     io.Writer
}

func (n *Info) Do(_ context.Context) error {
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Gateway == nil {
		return errors.New("failed to create note store")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 80
	tbl.Wrap = true

	configPath := "(STICKYNOTE_CONFIG_PATH not set)"
	if override := os.Getenv("STICKYNOTE_CONFIG_PATH"); override != "" {
		configPath = override
	}
	tracker := strings.Join(n.Config.TrackerCommand(), " ")
	if tracker == "" {
		tracker = "(none)"
	}

	tbl.AddRow(bold.Sprint("Config path"), configPath)
	tbl.AddRow(bold.Sprint("Store path"), n.Config.BasePath())
	tbl.AddRow(bold.Sprint("Backend"), n.Config.Backend())
	tbl.AddRow(bold.Sprint("Key"), n.Gateway.Key())
	tbl.AddRow(bold.Sprint("Max length"), note.Limit(n.Config.MaxLength()))
	tbl.AddRow(bold.Sprint("Tracker"), tracker)
	tbl.AddRow(bold.Sprint("Record"), describe(n.Gateway))
	if n.Raw {
		raw, err := n.Gateway.Raw()
		if err != nil {
			raw = []byte("-")
		}
		tbl.AddRow(bold.Sprint("Payload"), string(raw))
	}

	_, _ = fmt.Fprintln(out, tbl)
	return nil
}

func describe(g *store.Gateway) string {
	rec, err := g.Load()
	switch {
	case err == nil:
		return fmt.Sprintf("ok (%d chars, %s)", note.Len(rec.Text), rec.Color)
	case errors.Is(err, store.ErrNoRecord):
		return "none, default note in use"
	case errors.Is(err, store.ErrCorrupt), errors.Is(err, store.ErrShape):
		return fmt.Sprintf("unreadable, default note in use (%v)", err)
	default:
		return err.Error()
	}
}
