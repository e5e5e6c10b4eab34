package marketdata

import (
	"testing"

	"github.com/stockcouncil/StockCouncilGo/internal/findata"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(findata.NewLoader("testdata"), nil)
}

func TestPrice(t *testing.T) {
	res := newTestService(t).Price("ibm")
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Symbol != "IBM" {
		t.Fatalf("expected symbol IBM, got %q", res.Symbol)
	}
	if res.LatestPrice != 152.9 {
		t.Fatalf("expected latest price 152.9, got %v", res.LatestPrice)
	}
	if res.PreviousClose != 152.8 {
		t.Fatalf("expected previous close 152.8, got %v", res.PreviousClose)
	}
	if res.PriceChange != 0.1 {
		t.Fatalf("expected price change 0.1, got %v", res.PriceChange)
	}
	if res.PriceChangePercent != "0.07%" {
		t.Fatalf("expected change percent 0.07%%, got %q", res.PriceChangePercent)
	}
	if res.Timestamp != "2024-01-15 10:00:00" {
		t.Fatalf("unexpected timestamp %q", res.Timestamp)
	}
	if res.Volume != 1290 {
		t.Fatalf("expected volume 1290, got %d", res.Volume)
	}
	if res.LiveQuote != 0 {
		t.Fatalf("live quote should be absent offline, got %v", res.LiveQuote)
	}
}

func TestPriceDeterministic(t *testing.T) {
	svc := newTestService(t)
	first := svc.Price("IBM")
	for i := 0; i < 3; i++ {
		if got := svc.Price("IBM"); *got.PriceQuote != *first.PriceQuote {
			t.Fatalf("price changed between calls: %+v vs %+v", got.PriceQuote, first.PriceQuote)
		}
	}
}

func TestSMA(t *testing.T) {
	prices := []float64{10, 20, 30, 40}
	if got := SMA(prices, 2); got != 35 {
		t.Fatalf("SMA = %v, want 35", got)
	}
	if got := SMA(prices, 5); got != 0 {
		t.Fatalf("SMA with short history = %v, want 0", got)
	}
}

func TestEMA(t *testing.T) {
	// Seed SMA(2) = 15, multiplier 2/3: fold 30 then 40.
	// 15 + (30-15)*2/3 = 25; 25 + (40-25)*2/3 = 35.
	prices := []float64{10, 20, 30, 40}
	if got := EMA(prices, 2); got != 35 {
		t.Fatalf("EMA = %v, want 35", got)
	}
}

func TestRSI(t *testing.T) {
	rising := make([]float64, 20)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}
	if got := RSI(rising, 14); got != 100 {
		t.Fatalf("RSI of all-gain series = %v, want 100", got)
	}

	if got := RSI([]float64{1, 2, 3}, 14); got != 50 {
		t.Fatalf("RSI with insufficient data = %v, want neutral 50", got)
	}

	alternating := []float64{100, 101, 100, 101, 100, 101, 100, 101, 100, 101, 100, 101, 100, 101, 100, 101}
	got := RSI(alternating, 14)
	if got <= 0 || got >= 100 {
		t.Fatalf("RSI of alternating series = %v, want interior value", got)
	}
}

func TestComputeMACDShortSeries(t *testing.T) {
	if got := ComputeMACD([]float64{1, 2, 3}); got != (MACD{}) {
		t.Fatalf("MACD with short history = %+v, want zero", got)
	}
}

func TestIndicators(t *testing.T) {
	res := newTestService(t).Indicators("IBM", 14)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	// The fixture rises monotonically, so the RSI window has no losses.
	if res.Indicators.RSI != 100 {
		t.Fatalf("expected RSI 100, got %v", res.Indicators.RSI)
	}
	if res.Indicators.SMA != 152.25 {
		t.Fatalf("expected SMA 152.25, got %v", res.Indicators.SMA)
	}
	if res.Analysis.Momentum != "Overbought" {
		t.Fatalf("expected overbought momentum, got %q", res.Analysis.Momentum)
	}
	if res.Analysis.ShortTermTrend != "Short-term Uptrend" {
		t.Fatalf("expected uptrend, got %q", res.Analysis.ShortTermTrend)
	}
	if res.Analysis.Volatility != "Moderate-Low" {
		t.Fatalf("expected moderate-low volatility for beta 0.85, got %q", res.Analysis.Volatility)
	}
	if res.Indicators.RangePosition != "59.1%" {
		t.Fatalf("expected 52-week range position 59.1%%, got %q", res.Indicators.RangePosition)
	}
}

func TestTrendSummary(t *testing.T) {
	res := newTestService(t).TrendSummary("IBM", 50)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Trend.Direction != "Uptrend" {
		t.Fatalf("expected uptrend, got %q", res.Trend.Direction)
	}
	if res.Trend.Momentum != "Strong Bullish" {
		t.Fatalf("expected strong bullish momentum, got %q", res.Trend.Momentum)
	}
	if res.Trend.RecentPattern != "Higher highs and higher lows" {
		t.Fatalf("unexpected pattern %q", res.Trend.RecentPattern)
	}
	if res.SupportResistance.SupportLevel != 149.9 {
		t.Fatalf("expected support 149.9, got %v", res.SupportResistance.SupportLevel)
	}
	if res.SupportResistance.ResistanceLevel != 152.95 {
		t.Fatalf("expected resistance 152.95, got %v", res.SupportResistance.ResistanceLevel)
	}
	if res.Volume.VolumeTrend != "Average" {
		t.Fatalf("expected average volume trend, got %q", res.Volume.VolumeTrend)
	}
}

func TestSentiment(t *testing.T) {
	res := newTestService(t).Sentiment("IBM", 30)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	// Price trend +15 (1.93% gain) and momentum +25 (all up bars); volume,
	// pressure and volatility contribute nothing on this fixture.
	if res.Sentiment.SentimentScore != 40 {
		t.Fatalf("expected sentiment score 40, got %d", res.Sentiment.SentimentScore)
	}
	if res.Sentiment.OverallSentiment != "Bullish" {
		t.Fatalf("expected bullish sentiment, got %q", res.Sentiment.OverallSentiment)
	}
	if res.PriceMetrics.UpDays != 29 || res.PriceMetrics.DownDays != 0 {
		t.Fatalf("expected 29 up / 0 down, got %d/%d", res.PriceMetrics.UpDays, res.PriceMetrics.DownDays)
	}
	if res.Signals.MomentumIndicator != "Strong Positive" {
		t.Fatalf("expected strong positive momentum, got %q", res.Signals.MomentumIndicator)
	}
	if res.Sentiment.RiskLevel != "Low" {
		t.Fatalf("expected low risk, got %q", res.Sentiment.RiskLevel)
	}
}

func TestSentimentDeterministic(t *testing.T) {
	svc := newTestService(t)
	first := svc.Sentiment("IBM", 30)
	for i := 0; i < 3; i++ {
		got := svc.Sentiment("IBM", 30)
		if got.Sentiment != first.Sentiment || got.Summary != first.Summary {
			t.Fatalf("sentiment changed between calls")
		}
	}
}

func TestInsufficientBars(t *testing.T) {
	res := newTestService(t).Sentiment("IBM", 5)
	if res.Error == "" {
		t.Fatal("expected error for a window under 10 bars")
	}
}
