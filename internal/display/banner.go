package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// The QuickMeals wordmark printed once at startup, above the TUI.
//
//go:embed banner.txt
var bannerArt string

// RenderBanner returns the QuickMeals wordmark in the theme's banner colour
// with the tagline underneath, both centred for the current terminal.
func RenderBanner(s Styles, tagline string) string {
	return renderBanner(s, tagline, termWidth())
}

func renderBanner(s Styles, tagline string, width int) string {
	art := strings.Split(strings.TrimRight(bannerArt, "\n"), "\n")

	// The art is centred as a block so its columns stay aligned.
	artW := 0
	for _, l := range art {
		artW = max(artW, lipgloss.Width(l))
	}
	indent := strings.Repeat(" ", centerPad(width, artW))

	var b strings.Builder
	for _, l := range art {
		b.WriteString(indent + s.Banner.Render(l) + "\n")
	}
	if tagline != "" {
		pad := centerPad(width, lipgloss.Width(tagline))
		b.WriteString(strings.Repeat(" ", pad) + s.Secondary.Render(tagline) + "\n")
	}
	return b.String()
}

func centerPad(width, content int) int {
	if width <= content {
		return 0
	}
	return (width - content) / 2
}

// termWidth returns the terminal column count, or 80 when stdout is not a
// terminal.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
