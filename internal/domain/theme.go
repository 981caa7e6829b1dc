package domain

import "strings"

// Theme is the presentation colour scheme. It is process-local state owned
// by the application controller and resets on every start.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// String returns "light" or "dark".
func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps "dark" (any case) to ThemeDark and everything else to
// ThemeLight.
func ParseTheme(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), "dark") {
		return ThemeDark
	}
	return ThemeLight
}
