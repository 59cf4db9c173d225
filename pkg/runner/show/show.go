package show

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/stickynote/pkg/engine"
	"tableflip.dev/stickynote/pkg/printers"
	"tableflip.dev/stickynote/pkg/store"
)

// Show prints the stored note, optionally re-printing it whenever the store
// changes.
type Show struct {
	Gateway   *store.Gateway
	MaxLength int
	Follow    bool
	JSON      bool
	Plain     bool
	Out       io.Writer
	Logger    *slog.Logger
}

func (s *Show) Do(ctx context.Context) error {
	if err := s.print(); err != nil {
		return err
	}
	if !s.Follow {
		return nil
	}

	events, err := s.Gateway.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := s.print(); err != nil {
				return err
			}
		}
	}
}

func (s *Show) print() error {
	card := printers.NewCard()
	card.Plain = card.Plain || s.Plain
	if s.Out != nil {
		card.Out = s.Out
	}
	e := engine.New(engine.Options{
		Gateway:   s.Gateway,
		Sink:      card,
		MaxLength: s.MaxLength,
		Logger:    s.Logger,
	})
	st := e.Start()
	if st.Healed && s.Logger != nil {
		s.Logger.Info("stored note was normalized", "key", s.Gateway.Key())
	}

	if s.JSON {
		return WriteJSON(card.Out, st)
	}
	card.Print()
	return nil
}

// WriteJSON prints st as indented JSON.
func WriteJSON(w io.Writer, st engine.State) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
