// Package note holds the sticky note record and the rules that turn any raw
// candidate into a valid one.
package note

import (
	"encoding/json"
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultMaxLength is used when no positive limit is configured.
const DefaultMaxLength = 120

// Record is the authoritative note. It is replaced, never mutated, on every
// accepted change.
type Record struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Default is the note shown when nothing usable has been stored.
var Default = Record{
	Text:  "MindAR Sticky Note",
	Color: "#F5EE84",
}

// Candidate is a raw note as emitted by an input source. Fields are left
// untyped so that anything decoded from the outside world can be passed in.
type Candidate struct {
	Text  any
	Color any
}

// Input builds a candidate from well-typed form values.
func Input(text, color string) Candidate {
	return Candidate{Text: text, Color: color}
}

// FromRecord turns a record back into a candidate.
func FromRecord(r Record) Candidate {
	return Candidate{Text: r.Text, Color: r.Color}
}

// CandidateFromJSON decodes data into a candidate. It never fails: anything
// that is not a JSON object yields an empty candidate.
func CandidateFromJSON(data []byte) Candidate {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Candidate{}
	}
	return Candidate{Text: fields["text"], Color: fields["color"]}
}

// Limit resolves the configured maximum length.
func Limit(configured int) int {
	if configured > 0 {
		return configured
	}
	return DefaultMaxLength
}

// Len counts user-perceived characters (grapheme clusters).
func Len(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Sanitizer converts candidates into records.
type Sanitizer struct {
	MaxLength int
	Default   Record
}

// NewSanitizer returns a sanitizer for the given limit and default note.
func NewSanitizer(maxLength int, def Record) Sanitizer {
	return Sanitizer{MaxLength: Limit(maxLength), Default: def}
}

// ClampText returns at most MaxLength grapheme clusters of v. Non-string
// values become the empty string and invalid UTF-8 is replaced with U+FFFD,
// so the result survives a JSON round trip unchanged.
func (s Sanitizer) ClampText(v any) string {
	text, ok := v.(string)
	if !ok {
		return ""
	}
	text = strings.ToValidUTF8(text, "\uFFFD")
	if s.MaxLength <= 0 || Len(text) <= s.MaxLength {
		return text
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for n := 0; n < s.MaxLength && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return b.String()
}

// Color returns v when it is a non-empty string and the default colour
// otherwise. The value is not checked for being valid hex.
func (s Sanitizer) Color(v any) string {
	if c, ok := v.(string); ok && c != "" {
		return c
	}
	if s.Default.Color != "" {
		return s.Default.Color
	}
	return Default.Color
}

// Sanitize builds a complete record from c.
func (s Sanitizer) Sanitize(c Candidate) Record {
	return Record{
		Text:  s.ClampText(c.Text),
		Color: s.Color(c.Color),
	}
}
