// Package display renders council results for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stockcouncil/StockCouncilGo/internal/council"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Background(lipgloss.Color("#1F2937")).
		Padding(0, 1).
		MarginBottom(1)

	speakerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	statementStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#6B7280")).
		Padding(0, 2).
		Width(80)

	buyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	holdStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F59E0B"))

	avoidStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	verdictStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#7C3AED")).
		Padding(1, 2).
		Width(80)
)

// Labels participants get in the rendered transcript.
var speakerLabels = map[string]string{
	council.MarketAnalyst:       "Market Analyst",
	council.FundamentalsAnalyst: "Fundamentals Analyst",
	council.NewsAnalyst:         "News Analyst",
	council.InvestmentAdvisor:   "Investment Advisor",
}

// RenderResult formats a full council run: the transcript followed by the
// advisor's verdict.
func RenderResult(result *council.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Stock Council: %s", result.Symbol)))
	b.WriteString("\n\n")

	for _, turn := range result.Transcript {
		b.WriteString(speakerStyle.Render(speakerLabel(turn.Speaker)))
		b.WriteString("\n")
		b.WriteString(statementStyle.Render(strings.TrimSpace(turn.Content)))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderVerdict(result))
	b.WriteString("\n")
	return b.String()
}

// RenderVerdict formats just the recommendation block.
func RenderVerdict(result *council.Result) string {
	action := actionStyle(result.Recommendation.Action).Render(result.Recommendation.Action)
	body := fmt.Sprintf("Recommendation for %s: %s", result.Symbol, action)
	if rationale := strings.TrimSpace(result.Recommendation.Rationale); rationale != "" {
		body += "\n\n" + rationale
	}
	return verdictStyle.Render(body)
}

func speakerLabel(name string) string {
	if label, ok := speakerLabels[name]; ok {
		return label
	}
	return name
}

func actionStyle(action string) lipgloss.Style {
	switch action {
	case council.ActionBuy:
		return buyStyle
	case council.ActionAvoid:
		return avoidStyle
	default:
		return holdStyle
	}
}
