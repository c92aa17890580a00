package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorRed       = lipgloss.Color("#E06C75")
	ColorGreen     = lipgloss.Color("#98C379")
	ColorYellow    = lipgloss.Color("#E5C07B")
	ColorBlue      = lipgloss.Color("#61AFEF")
	ColorMagenta   = lipgloss.Color("#C678DD")
	ColorBorder    = lipgloss.Color("#3F4451")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true).
			PaddingLeft(1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1)

	TimerStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	TranscriptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	QuestionStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	GoodStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	LineStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1)
)

// styleLine colours a transcript line by what it says.
func styleLine(text string) string {
	switch {
	case hasAnyPrefix(text, "Question ", "Session ", "Practice Round", "Recall Round"):
		return QuestionStyle.Render(text)
	case hasAnyPrefix(text, "Good job", "All sessions complete", "Break over", "Session resumed"):
		return GoodStyle.Render(text)
	case hasAnyPrefix(text, "Invalid command", "No input", "You need improvement", "No question", "Start a session"):
		return WarnStyle.Render(text)
	default:
		return LineStyle.Render(text)
	}
}
