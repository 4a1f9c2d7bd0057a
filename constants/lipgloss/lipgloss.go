// Package lipgloss holds the shared terminal styles used across commands.
package lipgloss

import gloss "github.com/charmbracelet/lipgloss"

var (
	Red    = gloss.NewStyle().Foreground(gloss.Color("9"))
	Green  = gloss.NewStyle().Foreground(gloss.Color("10"))
	Yellow = gloss.NewStyle().Foreground(gloss.Color("11"))
	Info   = gloss.NewStyle().Foreground(gloss.Color("12")).Bold(true)

	BoxStyle = gloss.NewStyle().
			Border(gloss.RoundedBorder()).
			BorderForeground(gloss.Color("8")).
			Padding(0, 1)
)
