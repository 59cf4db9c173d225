package editor

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/stickynote/pkg/contrast"
	"tableflip.dev/stickynote/pkg/engine"
	"tableflip.dev/stickynote/pkg/note"
	"tableflip.dev/stickynote/pkg/store"
	"tableflip.dev/stickynote/pkg/tracker"
	"tableflip.dev/stickynote/pkg/tui/palette"
)

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func newGateway(t *testing.T) *store.Gateway {
	t.Helper()
	return store.New(store.NewDiskv(t.TempDir()), "")
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Text: string(r), Code: r})
	}
}

func TestNewShowsDefaultNote(t *testing.T) {
	m := New(context.Background(), Options{Gateway: newGateway(t)})

	if m.Value() != note.Default.Text {
		t.Fatalf("expected input seeded with default text, got %q", m.Value())
	}
	view := stripANSIString(m.View())
	if !strings.Contains(view, "MindAR Sticky Note") {
		t.Fatalf("expected default note in view:\n%s", view)
	}
	if !strings.Contains(view, "18 / 120 chars") {
		t.Fatalf("expected counter in view:\n%s", view)
	}
	if m.view.TextColor != contrast.Dark {
		t.Fatalf("expected dark text, got %q", m.view.TextColor)
	}
}

func TestTypingPersistsEachChange(t *testing.T) {
	g := newGateway(t)
	if err := g.Save(note.Record{Text: "", Color: "#000000"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := New(context.Background(), Options{Gateway: g})

	typeText(m, "hi")

	got, err := g.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Text != "hi" || got.Color != "#000000" {
		t.Fatalf("unexpected stored note %+v", got)
	}
	if !m.pulse {
		t.Fatalf("expected update pulse after typing")
	}
	if m.view.TextColor != contrast.Light {
		t.Fatalf("expected light text on black, got %q", m.view.TextColor)
	}
}

func TestTypingPastLimitCorrectsInput(t *testing.T) {
	g := newGateway(t)
	m := New(context.Background(), Options{Gateway: g, MaxLength: 120})
	m.input.SetValue(strings.Repeat("a", 120))

	typeText(m, "b")

	want := strings.Repeat("a", 120)
	if m.Value() != want {
		t.Fatalf("expected input clamped back to 120 chars, got %d", len(m.Value()))
	}
	got, err := g.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Text != want {
		t.Fatalf("expected clamped text stored, got %d chars", len(got.Text))
	}
}

func TestColorKeysCyclePalette(t *testing.T) {
	g := newGateway(t)
	m := New(context.Background(), Options{Gateway: g})

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	if m.State().Record.Color != palette.Presets[1].Color {
		t.Fatalf("expected second preset, got %q", m.State().Record.Color)
	}
	got, _ := g.Load()
	if got.Color != palette.Presets[1].Color || got.Text != note.Default.Text {
		t.Fatalf("unexpected stored note %+v", got)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if m.State().Record.Color != palette.Presets[0].Color {
		t.Fatalf("expected first preset again, got %q", m.State().Record.Color)
	}
}

func TestStoredCustomColorStaysSelectable(t *testing.T) {
	g := newGateway(t)
	if err := g.Save(note.Record{Text: "x", Color: "#123456"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := New(context.Background(), Options{Gateway: g})

	if sel := m.palette.Selected(); !sel.Custom || sel.Color != "#123456" {
		t.Fatalf("expected custom option selected, got %+v", sel)
	}
	if !strings.Contains(stripANSIString(m.View()), "Custom color (#123456)") {
		t.Fatalf("expected custom option in view")
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.State().Record.Color != "#123456" {
		t.Fatalf("confirm changed colour to %q", m.State().Record.Color)
	}
}

func TestWhitespaceShowsPlaceholder(t *testing.T) {
	g := newGateway(t)
	if err := g.Save(note.Record{Text: "   ", Color: "#FFFFFF"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := New(context.Background(), Options{Gateway: g})

	if m.view.DisplayText != engine.Placeholder {
		t.Fatalf("expected placeholder, got %q", m.view.DisplayText)
	}
	if m.Value() != "   " {
		t.Fatalf("expected raw whitespace kept in input, got %q", m.Value())
	}
}

type stubTracker struct {
	err  error
	errs chan error
	ctx  context.Context
}

func (s *stubTracker) Start(ctx context.Context) error {
	s.ctx = ctx
	return s.err
}
func (s *stubTracker) Errors() <-chan error { return s.errs }

func TestTrackerLifecycleUpdatesStatusLine(t *testing.T) {
	eng := &stubTracker{errs: make(chan error, 1)}
	m := New(context.Background(), Options{Gateway: newGateway(t), Tracker: eng})

	if !strings.Contains(stripANSIString(m.View()), tracker.MsgLoading) {
		t.Fatalf("expected loading line before start")
	}

	msg := m.Init()()
	_, wait := m.Update(msg)
	if m.Status().Phase != tracker.Ready {
		t.Fatalf("expected ready, got %+v", m.Status())
	}
	if strings.Contains(stripANSIString(m.View()), tracker.MsgLoading) {
		t.Fatalf("expected loading line hidden once ready")
	}

	eng.errs <- errors.New("camera denied")
	m.Update(wait())
	if m.Status().Message != tracker.MsgEngineError {
		t.Fatalf("expected engine error message, got %+v", m.Status())
	}
	if !strings.Contains(stripANSIString(m.View()), tracker.MsgEngineError) {
		t.Fatalf("expected engine error in view")
	}
}

func TestTrackerStartFailure(t *testing.T) {
	eng := &stubTracker{err: errors.New("no device")}
	m := New(context.Background(), Options{Gateway: newGateway(t), Tracker: eng})

	_, cmd := m.Update(m.Init()())
	if cmd != nil {
		t.Fatalf("expected no retry after start failure")
	}
	if m.Status().Message != tracker.MsgStartFailed {
		t.Fatalf("expected start failure message, got %+v", m.Status())
	}
}

func TestPasteIsClampedAndPersisted(t *testing.T) {
	g := newGateway(t)
	m := New(context.Background(), Options{Gateway: g, MaxLength: 120})
	m.input.SetValue("")
	typeText(m, "a")

	m.Update(tea.PasteMsg(strings.Repeat("p", 200)))

	want := "a" + strings.Repeat("p", 119)
	if m.Value() != want {
		t.Fatalf("expected input clamped to 120 chars, got %d", len(m.Value()))
	}
	if m.State().Record.Text != want {
		t.Fatalf("expected record clamped to 120 chars, got %d", len(m.State().Record.Text))
	}
	got, err := g.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Text != want {
		t.Fatalf("expected pasted text stored, got %d chars", len(got.Text))
	}
	if m.view.CharCount != 120 {
		t.Fatalf("expected counter at 120, got %d", m.view.CharCount)
	}
}

func TestQuitStopsTracker(t *testing.T) {
	eng := &stubTracker{errs: make(chan error)}
	m := New(context.Background(), Options{Gateway: newGateway(t), Tracker: eng})
	m.Update(m.Init()())
	if eng.ctx == nil || eng.ctx.Err() != nil {
		t.Fatalf("expected tracker started with a live context")
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if eng.ctx.Err() == nil {
		t.Fatalf("expected tracker context cancelled after quit")
	}
}

func TestQuitStopsTrackerProcess(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	eng := tracker.NewExec([]string{"sleep", "30"})
	m := New(context.Background(), Options{Gateway: newGateway(t), Tracker: eng})
	m.Update(m.Init()())
	if m.Status().Phase != tracker.Ready {
		t.Fatalf("expected ready, got %+v", m.Status())
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	select {
	case err, ok := <-eng.Errors():
		if ok {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("tracker process still running after quit")
	}
}

func TestNopTrackerHasNoLoadingLine(t *testing.T) {
	m := New(context.Background(), Options{Gateway: newGateway(t), Tracker: tracker.NewExec(nil)})

	if m.Status().Visible() {
		t.Fatalf("expected no loading line, got %+v", m.Status())
	}
	if strings.Contains(stripANSIString(m.View()), tracker.MsgLoading) {
		t.Fatalf("expected loading line hidden without a tracker")
	}
	if m.Init() != nil {
		t.Fatalf("expected no tracker command")
	}
}
