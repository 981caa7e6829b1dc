package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/quickmeals/internal/domain"
)

// palette is one colour scheme.
type palette struct {
	barBg, barFg          lipgloss.Color
	primary, secondary    lipgloss.Color
	accent, heading       lipgloss.Color
	healthy, indulgent    lipgloss.Color
	badge, urgent, subtle lipgloss.Color
}

var (
	darkPalette = palette{
		barBg:     "#27272a",
		barFg:     "#a1a1aa",
		primary:   "#d4d4d8",
		secondary: "#71717a",
		accent:    "#bae6fd",
		heading:   "#bbf7d0",
		healthy:   "#86efac",
		indulgent: "#fdba74",
		badge:     "#c4b5fd",
		urgent:    "#fca5a5",
		subtle:    "#52525b",
	}
	lightPalette = palette{
		barBg:     "#e4e4e7",
		barFg:     "#3f3f46",
		primary:   "#18181b",
		secondary: "#71717a",
		accent:    "#0369a1",
		heading:   "#15803d",
		healthy:   "#16a34a",
		indulgent: "#c2410c",
		badge:     "#6d28d9",
		urgent:    "#b91c1c",
		subtle:    "#a1a1aa",
	}
)

// Styles is the set of lipgloss styles for one theme.
type Styles struct {
	Bar       lipgloss.Style
	BarLabel  lipgloss.Style
	BarValue  lipgloss.Style
	Sep       lipgloss.Style
	Prompt    lipgloss.Style
	Echo      lipgloss.Style
	Banner    lipgloss.Style
	Heading   lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Healthy   lipgloss.Style
	Indulgent lipgloss.Style
	Badge     lipgloss.Style
	Urgent    lipgloss.Style
	Done      lipgloss.Style
}

// NewStyles builds the styles for t.
func NewStyles(t domain.Theme) Styles {
	p := lightPalette
	if t == domain.ThemeDark {
		p = darkPalette
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return Styles{
		Bar:       lipgloss.NewStyle().Background(p.barBg).Foreground(p.barFg),
		BarLabel:  lipgloss.NewStyle().Background(p.barBg).Foreground(p.secondary),
		BarValue:  lipgloss.NewStyle().Background(p.barBg).Foreground(p.accent),
		Sep:       lipgloss.NewStyle().Background(p.barBg).Foreground(p.subtle),
		Prompt:    fg(p.secondary),
		Echo:      fg(p.barFg),
		Banner:    fg(p.secondary),
		Heading:   fg(p.heading).Bold(true),
		Primary:   fg(p.primary),
		Secondary: fg(p.secondary),
		Accent:    fg(p.accent),
		Healthy:   fg(p.healthy),
		Indulgent: fg(p.indulgent),
		Badge:     fg(p.badge).Bold(true),
		Urgent:    fg(p.urgent).Bold(true),
		Done:      fg(p.subtle).Strikethrough(true),
	}
}
