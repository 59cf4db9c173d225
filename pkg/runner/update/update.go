package update

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"tableflip.dev/stickynote/pkg/engine"
	"tableflip.dev/stickynote/pkg/note"
	"tableflip.dev/stickynote/pkg/printers"
	"tableflip.dev/stickynote/pkg/runner/show"
	"tableflip.dev/stickynote/pkg/store"
)

// Update applies one input event to the note: a new text, a new colour, or
// a raw JSON candidate. Whatever is not given keeps its current value.
type Update struct {
	Gateway   *store.Gateway
	MaxLength int

	Text  *string
	Color *string
	Raw   string

	JSON   bool
	Plain  bool
	Out    io.Writer
	ErrOut io.Writer
	Logger *slog.Logger
}

func (u *Update) Do(_ context.Context) error {
	card := printers.NewCard()
	card.Plain = card.Plain || u.Plain
	if u.Out != nil {
		card.Out = u.Out
	}
	e := engine.New(engine.Options{
		Gateway:   u.Gateway,
		Sink:      card,
		MaxLength: u.MaxLength,
		Logger:    u.Logger,
	})

	current := e.Start().Record
	st := e.Reconcile(u.candidate(current))

	if requested, ok := u.requestedText(); ok && note.Len(requested) > e.MaxLength() {
		errOut := u.ErrOut
		if errOut == nil {
			errOut = color.Error
		}
		_, _ = fmt.Fprintf(errOut, "note truncated to %d characters\n", e.MaxLength())
	}

	if u.JSON {
		return show.WriteJSON(card.Out, st)
	}
	card.Print()
	return nil
}

func (u *Update) candidate(current note.Record) note.Candidate {
	if u.Raw != "" {
		return note.CandidateFromJSON([]byte(u.Raw))
	}
	c := note.FromRecord(current)
	if u.Text != nil {
		c.Text = *u.Text
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	return c
}

func (u *Update) requestedText() (string, bool) {
	if u.Raw != "" {
		if s, ok := note.CandidateFromJSON([]byte(u.Raw)).Text.(string); ok {
			return s, true
		}
		return "", false
	}
	if u.Text == nil {
		return "", false
	}
	return *u.Text, true
}
