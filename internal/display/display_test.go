package display

import (
	"strings"
	"testing"

	"github.com/stockcouncil/StockCouncilGo/internal/council"
)

func testResult() *council.Result {
	return &council.Result{
		Symbol: "IBM",
		Recommendation: council.Recommendation{
			Action:    council.ActionBuy,
			Rationale: "Valuation is cheap and momentum is positive.",
		},
		Transcript: []council.Turn{
			{Speaker: council.MarketAnalyst, Content: "RSI is elevated but the trend holds."},
			{Speaker: council.InvestmentAdvisor, Content: "RECOMMENDATION: **BUY**"},
		},
	}
}

func TestRenderResult(t *testing.T) {
	out := RenderResult(testResult())
	for _, want := range []string{"IBM", "Market Analyst", "Investment Advisor", "BUY", "trend holds"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered result missing %q", want)
		}
	}
}

func TestRenderVerdictIncludesRationale(t *testing.T) {
	out := RenderVerdict(testResult())
	if !strings.Contains(out, "Valuation is cheap") {
		t.Fatal("verdict should include the rationale")
	}
}

func TestSpeakerLabelFallsBack(t *testing.T) {
	if got := speakerLabel("moderator"); got != "moderator" {
		t.Fatalf("unknown speaker should pass through, got %q", got)
	}
}
