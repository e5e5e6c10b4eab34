package storage

import (
	"path/filepath"
	"testing"

	"github.com/stockcouncil/StockCouncilGo/internal/council"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "council.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRun() *council.Result {
	return &council.Result{
		Symbol: "IBM",
		Query:  "Should I buy, hold or avoid IBM right now?",
		Recommendation: council.Recommendation{
			Action:    council.ActionBuy,
			Rationale: "Cheap valuation, positive momentum.",
		},
		Transcript: []council.Turn{
			{Speaker: council.MarketAnalyst, Content: "Trend is up."},
			{Speaker: council.FundamentalsAnalyst, Content: "P/E is modest."},
			{Speaker: council.NewsAnalyst, Content: "No negative headlines."},
			{Speaker: council.InvestmentAdvisor, Content: "RECOMMENDATION: **BUY**"},
		},
	}
}

func TestSaveAndListRuns(t *testing.T) {
	store := newTestStore(t)

	runID, err := store.SaveRun(testRun())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if runID == 0 {
		t.Fatal("expected a run id")
	}

	runs, err := store.ListRuns("", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Symbol != "IBM" || runs[0].Action != council.ActionBuy {
		t.Fatalf("unexpected run summary: %+v", runs[0])
	}
	if runs[0].Turns != 4 {
		t.Fatalf("expected 4 turns, got %d", runs[0].Turns)
	}
}

func TestListRunsFiltersBySymbol(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.SaveRun(testRun()); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	other := testRun()
	other.Symbol = "MSFT"
	if _, err := store.SaveRun(other); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := store.ListRuns("MSFT", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Symbol != "MSFT" {
		t.Fatalf("expected only MSFT runs, got %+v", runs)
	}
}

func TestLoadTranscriptKeepsOrder(t *testing.T) {
	store := newTestStore(t)

	runID, err := store.SaveRun(testRun())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	transcript, err := store.LoadTranscript(runID)
	if err != nil {
		t.Fatalf("LoadTranscript: %v", err)
	}
	if len(transcript) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(transcript))
	}
	want := []string{
		council.MarketAnalyst,
		council.FundamentalsAnalyst,
		council.NewsAnalyst,
		council.InvestmentAdvisor,
	}
	for i, speaker := range want {
		if transcript[i].Speaker != speaker {
			t.Fatalf("turn %d: expected %s, got %s", i, speaker, transcript[i].Speaker)
		}
	}
}
