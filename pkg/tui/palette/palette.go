// Package palette holds the selectable note colours.
package palette

import (
	"fmt"
	"strings"

	"tableflip.dev/stickynote/pkg/note"
)

// Option is one selectable colour.
type Option struct {
	Label  string
	Color  string
	Custom bool
}

// Presets are always offered.
var Presets = []Option{
	{Label: "Yellow", Color: note.Default.Color},
	{Label: "Pink", Color: "#F8B4D9"},
	{Label: "Blue", Color: "#A7D8F0"},
	{Label: "Green", Color: "#B8E6B8"},
	{Label: "Orange", Color: "#FFC98B"},
	{Label: "Lavender", Color: "#D4B8F0"},
	{Label: "Charcoal", Color: "#2F3437"},
}

// Palette is an ordered list of options with one selected. At most one
// custom option exists; it is reused for every unlisted colour.
type Palette struct {
	options  []Option
	selected int
	fallback string
}

// New returns a palette with the presets and fallback as the colour used for
// empty input.
func New(fallback string) *Palette {
	opts := make([]Option, len(Presets))
	copy(opts, Presets)
	if fallback == "" {
		fallback = note.Default.Color
	}
	return &Palette{options: opts, fallback: fallback}
}

// Options returns a copy of the current options.
func (p *Palette) Options() []Option {
	out := make([]Option, len(p.options))
	copy(out, p.options)
	return out
}

// Index of the selected option.
func (p *Palette) Index() int {
	return p.selected
}

// Selected returns the selected option.
func (p *Palette) Selected() Option {
	return p.options[p.selected]
}

// Move shifts the selection by delta, wrapping around.
func (p *Palette) Move(delta int) Option {
	n := len(p.options)
	p.selected = ((p.selected+delta)%n + n) % n
	return p.Selected()
}

// Ensure selects color, adding or relabelling the custom option when no
// listed colour matches.
func (p *Palette) Ensure(color string) {
	if color == "" {
		color = p.fallback
	}
	for i, opt := range p.options {
		if strings.EqualFold(opt.Color, color) {
			p.selected = i
			return
		}
	}

	custom := Option{
		Label:  fmt.Sprintf("Custom color (%s)", strings.ToUpper(color)),
		Color:  color,
		Custom: true,
	}
	for i, opt := range p.options {
		if opt.Custom {
			p.options[i] = custom
			p.selected = i
			return
		}
	}
	p.options = append(p.options, custom)
	p.selected = len(p.options) - 1
}
