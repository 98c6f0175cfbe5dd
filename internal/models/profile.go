package models

import (
	"fmt"
	"strings"
)

// Theme identifies a visual theme preference. The engine only stores the
// identity; rendering is entirely the client's concern.
type Theme string

const (
	ThemeSystem       Theme = "System"
	ThemeLight        Theme = "Light"
	ThemeDark         Theme = "Dark"
	ThemeSoftGlass    Theme = "Soft Glass"
	ThemeHighContrast Theme = "High Contrast"
)

// Themes returns every theme in its fixed enumeration order.
func Themes() []Theme {
	return []Theme{ThemeSystem, ThemeLight, ThemeDark, ThemeSoftGlass, ThemeHighContrast}
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark, ThemeSoftGlass, ThemeHighContrast:
		return true
	}
	return false
}

// ParseTheme parses a theme name, case-insensitively.
func ParseTheme(s string) (Theme, error) {
	for _, t := range Themes() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme: %q", s)
}

// UserProfile holds the user's display name and chosen theme.
type UserProfile struct {
	DisplayName   string `json:"display_name"`
	SelectedTheme Theme  `json:"selected_theme"`
}
