package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/charlie0129/unitconv/pkg/ledger"
)

type palette struct {
	Primary     lipgloss.Color
	Background  lipgloss.Color
	Text        lipgloss.Color
	SecondaryBg lipgloss.Color
	FactBg      lipgloss.Color
}

var (
	lightPalette = palette{
		Primary:     lipgloss.Color("#3498db"),
		Background:  lipgloss.Color("#ffffff"),
		Text:        lipgloss.Color("#000000"),
		SecondaryBg: lipgloss.Color("#f0f0f0"),
		FactBg:      lipgloss.Color("#e6f7ff"),
	}
	darkPalette = palette{
		Primary:     lipgloss.Color("#2980b9"),
		Background:  lipgloss.Color("#1E1E1E"),
		Text:        lipgloss.Color("#ffffff"),
		SecondaryBg: lipgloss.Color("#2D2D2D"),
		FactBg:      lipgloss.Color("#1E3A5F"),
	}

	successColor = lipgloss.Color("#27ae60")
	warningColor = lipgloss.Color("#e67e22")
)

type styles struct {
	App      lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Chip     lipgloss.Style
	ChipOn   lipgloss.Style
	Result   lipgloss.Style
	Panel    lipgloss.Style
	Fact     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Subtitle lipgloss.Style
}

func newStyles(theme ledger.Theme) styles {
	p := lightPalette
	if theme == ledger.ThemeDark {
		p = darkPalette
	}

	panel := lipgloss.NewStyle().
		Background(p.SecondaryBg).
		Foreground(p.Text).
		Padding(0, 1).
		MarginTop(1)

	return styles{
		App: lipgloss.NewStyle().
			Background(p.Background).
			Foreground(p.Text).
			Padding(1, 2),
		Header: lipgloss.NewStyle().
			Background(p.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true).
			Padding(0, 2).
			MarginBottom(1),
		Label:   lipgloss.NewStyle().Foreground(p.Text),
		Focused: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Chip: lipgloss.NewStyle().
			Background(p.SecondaryBg).
			Foreground(p.Text).
			Padding(0, 1).
			MarginRight(1),
		ChipOn: lipgloss.NewStyle().
			Background(p.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			MarginRight(1),
		Result: panel.Bold(true).Padding(1, 2),
		Panel:  panel,
		Fact: lipgloss.NewStyle().
			Background(p.FactBg).
			Foreground(p.Text).
			Italic(true).
			Padding(0, 1).
			MarginTop(1),
		Muted:    lipgloss.NewStyle().Faint(true),
		Success:  lipgloss.NewStyle().Foreground(successColor).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(warningColor).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
	}
}
