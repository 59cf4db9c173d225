package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/stickynote/pkg/contrast"
	"tableflip.dev/stickynote/pkg/engine"
	"tableflip.dev/stickynote/pkg/note"
)

func stripANSI(s string) string {
	var b strings.Builder
	seq := false
	for _, r := range s {
		if r == ansi.Marker {
			seq = true
			continue
		}
		if seq {
			if ansi.IsTerminator(r) {
				seq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestCardPrintsPlainNote(t *testing.T) {
	var buf bytes.Buffer
	card := &Card{Out: &buf, Plain: true}
	engine.New(engine.Options{Sink: card}).Reconcile(note.Input("hello", "#000000"))

	out := buf.String()
	if out != "" {
		t.Fatalf("card should not print before Print, got %q", out)
	}
	card.Print()
	out = buf.String()
	for _, want := range []string{"hello", contrast.Light, "#000000", "5 / 120 chars"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderCardWrapsText(t *testing.T) {
	p := engine.Derive(note.Record{Text: "a fairly long sticky note that needs wrapping", Color: "#F5EE84"}, 120)
	out := stripANSI(RenderCard(p, 20))

	if !strings.Contains(out, "a fairly long") {
		t.Fatalf("expected wrapped text in %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if ansi.PrintableRuneWidth(line) > 20 {
			t.Fatalf("line wider than card: %q", line)
		}
	}
}

func TestRenderCardWithMalformedColor(t *testing.T) {
	p := engine.Derive(note.Record{Text: "x", Color: "not-a-color"}, 120)
	if out := stripANSI(RenderCard(p, 20)); !strings.Contains(out, "x") {
		t.Fatalf("expected text in %q", out)
	}
}

func TestCounter(t *testing.T) {
	if got := Counter(3, 0); got != "3 chars" {
		t.Fatalf("unexpected counter %q", got)
	}
	if got := Counter(3, 10); got != "3 / 10 chars" {
		t.Fatalf("unexpected counter %q", got)
	}
}
