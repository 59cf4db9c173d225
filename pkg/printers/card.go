package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/stickynote/pkg/contrast"
	"tableflip.dev/stickynote/pkg/engine"
)

const defaultWidth = 40

// Card collects note values from the engine and prints them as a card.
type Card struct {
	Out   io.Writer
	Width int
	Plain bool

	p engine.Presentation
}

// NewCard prints to stdout, in plain text when stdout is not a colour
// terminal.
func NewCard() *Card {
	return &Card{Out: color.Output, Width: defaultWidth, Plain: Plain(os.Stdout)}
}

// Plain reports whether f should receive uncoloured output.
func Plain(f *os.File) bool {
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return true
	}
	return termenv.EnvColorProfile() == termenv.Ascii
}

func (c *Card) SetDisplayText(s string)       { c.p.DisplayText = s }
func (c *Card) SetTextColor(s string)         { c.p.TextColor = s }
func (c *Card) SetBackgroundColor(s string)   { c.p.BackgroundColor = s }
func (c *Card) EnsureColorOption(string)      {}
func (c *Card) SetCharCount(current, max int) { c.p.CharCount, c.p.MaxLength = current, max }

// Presentation returns what the card last received.
func (c *Card) Presentation() engine.Presentation {
	return c.p
}

// Print writes the card followed by the character counter.
func (c *Card) Print() {
	out := c.Out
	if out == nil {
		out = color.Output
	}
	width := c.Width
	if width <= 0 {
		width = defaultWidth
	}

	if c.Plain {
		_, _ = fmt.Fprintln(out, wordwrap.String(c.p.DisplayText, width))
		_, _ = fmt.Fprintf(out, "[%s on %s]\n", c.p.TextColor, c.p.BackgroundColor)
		_, _ = fmt.Fprintln(out, Counter(c.p.CharCount, c.p.MaxLength))
		return
	}

	_, _ = fmt.Fprintln(out, RenderCard(c.p, width))
	f := color.New(color.Faint)
	_, _ = f.Fprintln(out, Counter(c.p.CharCount, c.p.MaxLength))
}

// Counter formats the character count.
func Counter(current, max int) string {
	if max > 0 {
		return fmt.Sprintf("%d / %d chars", current, max)
	}
	return fmt.Sprintf("%d chars", current)
}

// RenderCard draws the note text on its background. Unparseable backgrounds
// are left uncoloured.
func RenderCard(p engine.Presentation, width int) string {
	if width < 8 {
		width = 8
	}
	inner := width - 4
	body := wordwrap.String(p.DisplayText, inner)

	style := lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Foreground(lipgloss.Color(p.TextColor))
	if _, ok := contrast.Luminance(p.BackgroundColor); ok {
		style = style.Background(lipgloss.Color("#" + strings.TrimPrefix(p.BackgroundColor, "#")))
	} else {
		style = style.Border(lipgloss.NormalBorder())
	}
	return style.Render(body)
}
