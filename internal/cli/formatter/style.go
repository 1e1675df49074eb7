package formatter

import "github.com/charmbracelet/lipgloss"

var (
	ColorDim    = lipgloss.Color("#928374")
	ColorHeader = lipgloss.Color("#b8bb26")
	ColorWarn   = lipgloss.Color("#fabd2f")
)

var (
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleWarn   = lipgloss.NewStyle().Foreground(ColorWarn)
)

// Dim renders secondary text such as empty cells.
func Dim(text string) string {
	return StyleDim.Render(text)
}
