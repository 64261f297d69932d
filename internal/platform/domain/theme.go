package domain

// Theme is the two-valued display preference. It is persisted per browser
// under a single key and never synced to the profile.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme named by s, defaulting to light for anything
// unrecognised.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
