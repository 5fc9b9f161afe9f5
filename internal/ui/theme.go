package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette, symbols and borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Selected, Help lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	SymOK, SymFail, Cursor, Sep string
}

var current = classic()

// SetTheme switches the active theme. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:     "neon",
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
			Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("201"),

			SymOK: "✔", SymFail: "✖", Cursor: "▸ ", Sep: " — ",
		}
	case "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
		current = Theme{
			Name:     "mono",
			Title:    lipgloss.NewStyle().Bold(true),
			Muted:    lipgloss.NewStyle(),
			Accent:   lipgloss.NewStyle(),
			Success:  lipgloss.NewStyle(),
			Error:    lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Reverse(true),
			Help:     lipgloss.NewStyle(),

			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},

			SymOK: "ok", SymFail: "x", Cursor: "> ", Sep: " - ",
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Name:     "classic",
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Help:     lipgloss.NewStyle().Faint(true),

		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),

		SymOK: "✔", SymFail: "✖", Cursor: "> ", Sep: " — ",
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

// Box is the framed container style of the current theme.
func (t Theme) Box() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
}
