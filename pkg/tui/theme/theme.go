package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the editor.
type Theme struct {
	Footer  FooterTheme
	Panel   PanelTheme
	Palette PaletteTheme
	Status  StatusTheme
}

// FooterTheme groups styles used by the help and counter line.
type FooterTheme struct {
	Help    lipgloss.Style
	Counter lipgloss.Style
	Pulse   lipgloss.Style
}

// PanelTheme styles the framed editor and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
}

// PaletteTheme styles the colour picker row.
type PaletteTheme struct {
	Option   lipgloss.Style
	Selected lipgloss.Style
}

// StatusTheme styles the tracker loading line.
type StatusTheme struct {
	Loading lipgloss.Style
	Error   lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Footer: FooterTheme{
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Counter: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Pulse:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Label: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Palette: PaletteTheme{
			Option:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Underline(true),
		},
		Status: StatusTheme{
			Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		},
	}
}
