package findata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderFlatLayout(t *testing.T) {
	loader := NewLoader("testdata")

	ov, err := loader.Overview("ibm")
	if err != nil {
		t.Fatalf("load overview: %v", err)
	}
	if ov.Symbol != "IBM" {
		t.Fatalf("expected symbol IBM, got %q", ov.Symbol)
	}
	if Num(ov.PERatio) != 22.5 {
		t.Fatalf("expected PERatio 22.5, got %v", Num(ov.PERatio))
	}
}

func TestLoaderSymbolSubdirPreferred(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "IBM")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, FileOverview), []byte(`{"Symbol":"IBM","PERatio":"10"}`), 0o644); err != nil {
		t.Fatalf("write subdir overview: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileOverview), []byte(`{"Symbol":"OTHER","PERatio":"99"}`), 0o644); err != nil {
		t.Fatalf("write flat overview: %v", err)
	}

	ov, err := NewLoader(dir).Overview("ibm")
	if err != nil {
		t.Fatalf("load overview: %v", err)
	}
	if ov.Symbol != "IBM" {
		t.Fatalf("expected subdir file to win, got symbol %q", ov.Symbol)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader(t.TempDir()).BalanceSheet("IBM"); err == nil {
		t.Fatal("expected error for missing balance sheet")
	}
}

func TestLoaderInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileEarnings), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := NewLoader(dir).Earnings("IBM"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestIntradayTimestampsNewestFirst(t *testing.T) {
	series, err := NewLoader("testdata").Intraday("IBM")
	if err != nil {
		t.Fatalf("load intraday: %v", err)
	}

	ts := series.Timestamps()
	if len(ts) != 30 {
		t.Fatalf("expected 30 bars, got %d", len(ts))
	}
	if ts[0] != "2024-01-15 10:00:00" {
		t.Fatalf("expected newest timestamp first, got %q", ts[0])
	}
	if ts[len(ts)-1] != "2024-01-15 09:31:00" {
		t.Fatalf("expected oldest timestamp last, got %q", ts[len(ts)-1])
	}

	closes := series.Closes(5)
	if len(closes) != 5 {
		t.Fatalf("expected 5 closes, got %d", len(closes))
	}
	if closes[0] != 152.9 {
		t.Fatalf("expected newest close 152.9, got %v", closes[0])
	}
}

func TestNum(t *testing.T) {
	cases := map[string]float64{
		"12.5": 12.5,
		"None": 0,
		"-":    0,
		"":     0,
		"-3.2": -3.2,
	}
	for in, want := range cases {
		if got := Num(in); got != want {
			t.Fatalf("Num(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPercentFormatting(t *testing.T) {
	if got := Percent(12.346); got != "12.35%" {
		t.Fatalf("Percent(12.346) = %q", got)
	}
	if got := Percent(7.5); got != "7.5%" {
		t.Fatalf("Percent(7.5) = %q", got)
	}
	if got := PercentYoY(25.0); got != "25% YoY" {
		t.Fatalf("PercentYoY(25.0) = %q", got)
	}
}
