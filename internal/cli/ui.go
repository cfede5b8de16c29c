package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	welcomeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true).
		Align(lipgloss.Center).
		Width(80)

	taglineStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Italic(true).
		Align(lipgloss.Center).
		Width(80).
		MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner(out io.Writer) {
	fmt.Fprintln(out, welcomeStyle.Render("📈 STOCK ANALYZER 📈"))
	fmt.Fprintln(out, taglineStyle.Render("Financials, fundamentals and news summarized into one investment conclusion"))
}

func displayInfo(out io.Writer, msg string) {
	fmt.Fprintln(out, infoStyle.Render(msg))
}
