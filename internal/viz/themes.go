package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the live view.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
}

var (
	ThemeNeon = Theme{
		Name:    "neon",
		Primary: lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Good:    lipgloss.Color("#00ff88"),
		Warn:    lipgloss.Color("#ffaa00"),
	}

	ThemeFirefly = Theme{
		Name:    "firefly",
		Primary: lipgloss.Color("#e6ff66"),
		Accent:  lipgloss.Color("#88cc22"),
		Text:    lipgloss.Color("#f5f5dc"),
		Muted:   lipgloss.Color("#4a5530"),
		Good:    lipgloss.Color("#ccff33"),
		Warn:    lipgloss.Color("#ff9933"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#dddddd"),
		Muted:   lipgloss.Color("#888888"),
		Good:    lipgloss.Color("#00cc00"),
		Warn:    lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{ThemeNeon, ThemeFirefly, ThemeMinimal}
)

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func nextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
