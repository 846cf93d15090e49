package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme of the control deck.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	// ThemeLab follows the scene palette: teal cable, warm effector.
	ThemeLab = Theme{
		Name:      "default",
		Primary:   lipgloss.Color("#2b6f77"),
		Secondary: lipgloss.Color("#1f5055"),
		Accent:    lipgloss.Color("#e89c5b"),
		Text:      lipgloss.Color("#f3e7d8"),
		Muted:     lipgloss.Color("#8a8178"),
		Success:   lipgloss.Color("#5fd068"),
		Warning:   lipgloss.Color("#e6b178"),
		Error:     lipgloss.Color("#ff4757"),
	}

	// ThemePaper is for light terminals, dark teal on the scene's paper.
	ThemePaper = Theme{
		Name:      "paper",
		Primary:   lipgloss.Color("#1f5055"),
		Secondary: lipgloss.Color("#2b6f77"),
		Accent:    lipgloss.Color("#b86f32"),
		Text:      lipgloss.Color("#1b1c1f"),
		Muted:     lipgloss.Color("#6b645c"),
		Success:   lipgloss.Color("#2f7d3a"),
		Warning:   lipgloss.Color("#a86a1c"),
		Error:     lipgloss.Color("#b3261e"),
	}

	// ThemeSteel takes the base and joint greys with the arm's amber.
	ThemeSteel = Theme{
		Name:      "steel",
		Primary:   lipgloss.Color("#d8f0f0"),
		Secondary: lipgloss.Color("#3a3d42"),
		Accent:    lipgloss.Color("#e6b178"),
		Text:      lipgloss.Color("#f5efe6"),
		Muted:     lipgloss.Color("#6f7378"),
		Success:   lipgloss.Color("#8fc9a3"),
		Warning:   lipgloss.Color("#e6b178"),
		Error:     lipgloss.Color("#e0685c"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#e4e4e4"),
		Secondary: lipgloss.Color("#444444"),
		Accent:    lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#d0d0d0"),
		Muted:     lipgloss.Color("#808080"),
		Success:   lipgloss.Color("#ffffff"),
		Warning:   lipgloss.Color("#bcbcbc"),
		Error:     lipgloss.Color("#ffffff"),
	}

	Themes = []Theme{
		ThemeLab,
		ThemePaper,
		ThemeSteel,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLab
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
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
