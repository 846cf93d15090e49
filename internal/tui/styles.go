package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas   lipgloss.Style
	panel    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	disabled lipgloss.Style
	card     lipgloss.Style
	graph    lipgloss.Style
	help     lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	rec      lipgloss.Style
	barFill  lipgloss.Style
	barEmpty lipgloss.Style
	notice   lipgloss.Style
	fault    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas:   lipgloss.NewStyle().Foreground(t.Primary).Padding(0, 1),
		panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(0, 2).Width(46),
		header:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(18),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		active:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		disabled: lipgloss.NewStyle().Foreground(t.Muted).Faint(true),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Secondary).Padding(0, 1).Width(12),
		graph:    lipgloss.NewStyle().Foreground(t.Primary),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		running:  lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		paused:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		rec:      lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		barFill:  lipgloss.NewStyle().Foreground(t.Accent),
		barEmpty: lipgloss.NewStyle().Foreground(t.Muted),
		notice:   lipgloss.NewStyle().Foreground(t.Secondary).Italic(true),
		fault:    lipgloss.NewStyle().Foreground(t.Error),
	}
}

// progressBar renders a fraction in [0, 1] as a fixed-width bar.
func (s styles) progressBar(frac float64, width int) string {
	filled := int(frac*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.barFill.Render(strings.Repeat("█", filled)) +
		s.barEmpty.Render(strings.Repeat("░", width-filled))
}

// slider renders v's position inside [lo, hi].
func (s styles) slider(v, lo, hi float64, width int) string {
	frac := 0.0
	if hi > lo {
		frac = (v - lo) / (hi - lo)
	}
	pos := int(frac*float64(width-1) + 0.5)
	if pos < 0 {
		pos = 0
	}
	if pos > width-1 {
		pos = width - 1
	}
	return "[" + strings.Repeat("=", pos) + "●" + strings.Repeat("-", width-1-pos) + "]"
}
