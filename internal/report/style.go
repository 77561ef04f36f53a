package report

import "github.com/charmbracelet/lipgloss"

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	matchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // cyan
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
)

type styler struct{ noColor bool }

func newStyler(noColor bool) styler { return styler{noColor: noColor} }

func (s styler) paint(style lipgloss.Style, text string) string {
	if s.noColor {
		return text
	}
	return style.Render(text)
}

func (s styler) status(text string) string { return s.paint(statusStyle, text) }
func (s styler) match(text string) string  { return s.paint(matchStyle, text) }
func (s styler) pass(text string) string   { return s.paint(passStyle, text) }
func (s styler) fail(text string) string   { return s.paint(failStyle, text) }

// Error renders a user-facing error line in red.
func Error(noColor bool, text string) string {
	return newStyler(noColor).fail(text)
}
