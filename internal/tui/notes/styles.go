package notes

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle = lipgloss.NewStyle().Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	statusBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F55")).
			Bold(true)

	previewSummaryStyle = statusBannerStyle.Copy().
				Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224"))

	directoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCC"))

	listStyle = lipgloss.NewStyle().
			MarginRight(1)

	previewStyle = lipgloss.NewStyle().
			MarginLeft(1).
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#334455"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#0AF")).
			Padding(1, 3)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCC")).
			Padding(0, 2).
			MarginRight(2)

	activeButtonStyle = buttonStyle.Copy().
				Foreground(lipgloss.Color("#FFF")).
				Background(lipgloss.Color("#0AF")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
)

func renderHelpWithinWidth(width int, content string) string {
	if width <= 0 {
		return helpStyle.Render(content)
	}

	return helpStyle.Copy().
		MaxWidth(width).
		Render(content)
}
