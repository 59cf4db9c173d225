package update

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"tableflip.dev/stickynote/pkg/engine"
	"tableflip.dev/stickynote/pkg/note"
	"tableflip.dev/stickynote/pkg/store"
)

func strPtr(s string) *string { return &s }

func newGateway(t *testing.T) *store.Gateway {
	t.Helper()
	g, err := store.Open(store.StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return g
}

func TestUpdateTextKeepsColor(t *testing.T) {
	g := newGateway(t)
	if err := g.Save(note.Record{Text: "old", Color: "#000000"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var buf bytes.Buffer
	u := &Update{Gateway: g, Text: strPtr("new text"), Out: &buf, Plain: true}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := g.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != (note.Record{Text: "new text", Color: "#000000"}) {
		t.Fatalf("unexpected record %+v", got)
	}
	if !strings.Contains(buf.String(), "new text") {
		t.Fatalf("expected card output, got %q", buf.String())
	}
}

func TestUpdateColorKeepsText(t *testing.T) {
	g := newGateway(t)
	u := &Update{Gateway: g, Color: strPtr("#ABCDEF"), Out: &bytes.Buffer{}, Plain: true}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := g.Load()
	if got != (note.Record{Text: note.Default.Text, Color: "#ABCDEF"}) {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestUpdateClampsLongText(t *testing.T) {
	g := newGateway(t)
	var buf bytes.Buffer
	u := &Update{
		Gateway: g,
		Text:    strPtr(strings.Repeat("x", 121)),
		Color:   strPtr("#ABCDEF"),
		JSON:    true,
		Out:     &buf,
	}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}

	var st engine.State
	if err := json.Unmarshal(buf.Bytes(), &st); err != nil {
		t.Fatalf("decode output %q: %v", buf.String(), err)
	}
	if note.Len(st.Record.Text) != 120 || st.Presentation.CharCount != 120 {
		t.Fatalf("expected 120 chars, got %+v", st)
	}
	got, _ := g.Load()
	if got.Text != st.Record.Text {
		t.Fatalf("expected clamped text persisted")
	}
}

func TestUpdateFromRawCandidate(t *testing.T) {
	g := newGateway(t)
	u := &Update{Gateway: g, Raw: `{"text": 42, "color": null}`, Out: &bytes.Buffer{}, Plain: true}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := g.Load()
	if got != (note.Record{Text: "", Color: note.Default.Color}) {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestUpdateReportsTruncation(t *testing.T) {
	g := newGateway(t)
	var errOut bytes.Buffer
	u := &Update{
		Gateway:   g,
		MaxLength: 5,
		Text:      strPtr("abcdefgh"),
		Out:       &bytes.Buffer{},
		ErrOut:    &errOut,
		Plain:     true,
	}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := errOut.String(); got != "note truncated to 5 characters\n" {
		t.Fatalf("unexpected notice %q", got)
	}
	got, _ := g.Load()
	if got.Text != "abcde" {
		t.Fatalf("expected clamped text stored, got %q", got.Text)
	}
}

func TestUpdateInvalidUTF8IsNotTruncation(t *testing.T) {
	g := newGateway(t)
	var errOut bytes.Buffer
	u := &Update{Gateway: g, Text: strPtr("a\xff"), Out: &bytes.Buffer{}, ErrOut: &errOut, Plain: true}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected notice %q", errOut.String())
	}
}
