// Package engine reconciles note input, derived presentation and durable
// storage into one consistent state.
package engine

import (
	"errors"
	"log/slog"
	"strings"

	"tableflip.dev/stickynote/pkg/contrast"
	"tableflip.dev/stickynote/pkg/note"
	"tableflip.dev/stickynote/pkg/store"
)

// Placeholder is displayed when the note text is blank.
const Placeholder = "(no note)"

// Sink renders derived note values.
type Sink interface {
	SetDisplayText(text string)
	SetTextColor(color string)
	SetBackgroundColor(color string)
	// SetCharCount reports the stored length; max is 0 when unlimited.
	SetCharCount(current, max int)
	// EnsureColorOption keeps color selectable in any picker.
	EnsureColorOption(color string)
}

// Gateway is the durable side of the engine.
type Gateway interface {
	Load() (note.Record, error)
	Save(note.Record) error
}

// Presentation is recomputed from the record on every change.
type Presentation struct {
	DisplayText     string `json:"displayText"`
	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
	CharCount       int    `json:"charCount"`
	MaxLength       int    `json:"maxLength"`
}

// State is the result of a reconciliation. The caller owns it.
type State struct {
	Record       note.Record  `json:"record"`
	Presentation Presentation `json:"presentation"`
	// Healed is set by Start when the loaded record was rewritten.
	Healed bool `json:"healed,omitempty"`
}

// Options configure an Engine.
type Options struct {
	Gateway   Gateway
	Sink      Sink
	Default   note.Record
	MaxLength int
	Logger    *slog.Logger
}

// Engine is safe to share only between callers that serialize their calls;
// it keeps no note state of its own.
type Engine struct {
	gateway   Gateway
	sink      Sink
	sanitizer note.Sanitizer
	def       note.Record
	log       *slog.Logger
}

// New builds an engine. A zero Default means note.Default.
func New(opts Options) *Engine {
	def := opts.Default
	if def == (note.Record{}) {
		def = note.Default
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	sink := opts.Sink
	if sink == nil {
		sink = Discard{}
	}
	return &Engine{
		gateway:   opts.Gateway,
		sink:      sink,
		sanitizer: note.NewSanitizer(opts.MaxLength, def),
		def:       def,
		log:       log,
	}
}

// MaxLength is the resolved text limit.
func (e *Engine) MaxLength() int {
	return e.sanitizer.MaxLength
}

// Start loads the stored note, falling back to the default, and renders it.
// The record is written back only when sanitizing changed it.
func (e *Engine) Start() State {
	loaded := e.load()
	st := e.apply(note.FromRecord(loaded))
	if st.Record != loaded {
		e.save(st.Record)
		st.Healed = true
	}
	return st
}

// Reconcile accepts a candidate from an input source, renders it and
// persists it.
func (e *Engine) Reconcile(c note.Candidate) State {
	st := e.apply(c)
	e.save(st.Record)
	return st
}

func (e *Engine) apply(c note.Candidate) State {
	rec := e.sanitizer.Sanitize(c)
	p := Derive(rec, e.sanitizer.MaxLength)

	e.sink.SetDisplayText(p.DisplayText)
	e.sink.SetTextColor(p.TextColor)
	e.sink.SetBackgroundColor(p.BackgroundColor)
	e.sink.EnsureColorOption(p.BackgroundColor)
	e.sink.SetCharCount(p.CharCount, p.MaxLength)

	return State{Record: rec, Presentation: p}
}

// Derive computes the presentation of r without side effects.
func Derive(r note.Record, maxLength int) Presentation {
	display := strings.TrimSpace(r.Text)
	if display == "" {
		display = Placeholder
	}
	return Presentation{
		DisplayText:     display,
		TextColor:       contrast.For(r.Color),
		BackgroundColor: r.Color,
		CharCount:       note.Len(r.Text),
		MaxLength:       maxLength,
	}
}

func (e *Engine) load() note.Record {
	if e.gateway == nil {
		return e.def
	}
	rec, err := e.gateway.Load()
	switch {
	case err == nil:
		return rec
	case errors.Is(err, store.ErrNoRecord), errors.Is(err, store.ErrUnavailable):
	case errors.Is(err, store.ErrCorrupt), errors.Is(err, store.ErrShape):
		e.log.Debug("ignoring stored note", "error", err)
	default:
		e.log.Warn("could not load note", "error", err)
	}
	return e.def
}

func (e *Engine) save(r note.Record) {
	if e.gateway == nil {
		return
	}
	if err := e.gateway.Save(r); err != nil && !errors.Is(err, store.ErrUnavailable) {
		e.log.Warn("could not save note", "error", err)
	}
}

// Discard is a Sink that ignores everything.
type Discard struct{}

func (Discard) SetDisplayText(string)     {}
func (Discard) SetTextColor(string)       {}
func (Discard) SetBackgroundColor(string) {}
func (Discard) SetCharCount(int, int)     {}
func (Discard) EnsureColorOption(string)  {}
