package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nithiyasree11/basic-stock-analyzer/consts"
	"github.com/Nithiyasree11/basic-stock-analyzer/models"
)

const width = 80

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1).
		MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 1).
		Width(width)

	conclusionStyle = sectionStyle.
		BorderForeground(lipgloss.Color("#10B981"))

	headingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	footerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)
)

// ResultsDisplay handles the display of analysis results
type ResultsDisplay struct {
	out io.Writer
}

func NewResultsDisplay(out io.Writer) *ResultsDisplay {
	return &ResultsDisplay{out: out}
}

// Show writes the rendered record.
func (d *ResultsDisplay) Show(rec *models.RunRecord) {
	fmt.Fprintln(d.out, Render(rec))
}

// Render lays out the four summaries of a record, the conclusion last.
func Render(rec *models.RunRecord) string {
	text := func(f models.Field) string {
		if v, ok := rec.Get(f); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
		}
		return consts.MissingSummary
	}

	conclusion := text(models.FieldConclusion)
	recommendation := ExtractRecommendation(conclusion)

	blocks := []string{
		titleStyle.Render(fmt.Sprintf("ANALYSIS RESULTS FOR %s", rec.Symbol)),
		section(sectionStyle, "Financial Summary", text(models.FieldFinancialSummary)),
		section(sectionStyle, "Fundamental Summary", text(models.FieldFundamentalSummary)),
		section(sectionStyle, "News Summary", text(models.FieldNewsSummary)),
		section(conclusionStyle, fmt.Sprintf("Conclusion %s %s", recommendationEmoji(recommendation), recommendation), conclusion),
		footerStyle.Render(fmt.Sprintf("Analysis completed at %s. For informational purposes only, not financial advice.",
		time.Now().Format("2006-01-02 15:04:05"))),
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func section(style lipgloss.Style, title, body string) string {
	return style.Render(headingStyle.Render(title) + "\n" + body)
}

// ExtractRecommendation finds the first of BUY, SELL or HOLD mentioned in text.
func ExtractRecommendation(text string) string {
	text = strings.ToUpper(text)

	if strings.Contains(text, "BUY") {
		return "BUY"
	} else if strings.Contains(text, "SELL") {
		return "SELL"
	} else if strings.Contains(text, "HOLD") {
		return "HOLD"
	}

	return "PENDING"
}

func recommendationEmoji(recommendation string) string {
	switch recommendation {
	case "BUY":
		return "🟢"
	case "SELL":
		return "🔴"
	case "HOLD":
		return "🟡"
	default:
		return "⏳"
	}
}

// DisplayError shows formatted error messages
func DisplayError(out io.Writer, err error, context string) {
	fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("❌ Error in %s:", context)))
	fmt.Fprintf(out, "   %v\n", err)
	fmt.Fprintln(out, "   💡 Check your configuration and API keys")
}
