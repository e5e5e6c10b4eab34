package marketdata

import (
	"fmt"
	"strings"

	"github.com/stockcouncil/StockCouncilGo/internal/findata"
)

type SentimentAnalysis struct {
	OverallSentiment string `json:"overallSentiment"`
	SentimentScore   int    `json:"sentimentScore"`
	Confidence       string `json:"confidence"`
	RiskLevel        string `json:"riskLevel"`
}

type MarketSignals struct {
	BuyingPressure    string `json:"buyingPressure"`
	SellingPressure   string `json:"sellingPressure"`
	VolumeSignal      string `json:"volumeSignal"`
	MomentumIndicator string `json:"momentumIndicator"`
}

type SentimentPriceMetrics struct {
	CurrentPrice       float64 `json:"currentPrice"`
	PriceChange        float64 `json:"priceChange"`
	PriceChangePercent string  `json:"priceChangePercent"`
	PriceAction        string  `json:"priceAction"`
	UpDays             int     `json:"upDays"`
	DownDays           int     `json:"downDays"`
}

type SentimentVolumeMetrics struct {
	AverageVolume int64   `json:"averageVolume"`
	RecentVolume  int64   `json:"recentVolume"`
	VolumeRatio   float64 `json:"volumeRatio"`
}

type SentimentReport struct {
	Period            string                 `json:"period"`
	AnalysisTimeframe string                 `json:"analysisTimeframe"`
	Sentiment         SentimentAnalysis      `json:"sentimentAnalysis"`
	Signals           MarketSignals          `json:"marketSignals"`
	PriceMetrics      SentimentPriceMetrics  `json:"priceMetrics"`
	VolumeMetrics     SentimentVolumeMetrics `json:"volumeMetrics"`
	Recommendation    string                 `json:"recommendation"`
	Summary           string                 `json:"summary"`
}

type SentimentResult struct {
	Company string `json:"company"`
	*SentimentReport
	Error string `json:"error,omitempty"`
}

// Sentiment scores market mood in [-100, 100] from five weighted factors:
// price trend (30), up/down day momentum (25), volume conviction (20),
// buying pressure from close placement in bar ranges (15) and a volatility
// penalty (10).
func (s *Service) Sentiment(symbol string, lookback int) SentimentResult {
	if lookback <= 0 {
		lookback = 30
	}

	series, err := s.loader.Intraday(symbol)
	if err != nil {
		return SentimentResult{Company: upper(symbol), Error: err.Error()}
	}

	timestamps := series.Timestamps()
	if len(timestamps) > lookback {
		timestamps = timestamps[:lookback]
	}

	prices := make([]float64, len(timestamps))
	highs := make([]float64, len(timestamps))
	lows := make([]float64, len(timestamps))
	volumes := make([]float64, len(timestamps))
	for i, ts := range timestamps {
		bar := series.Series[ts]
		prices[i] = findata.Num(bar.Close)
		highs[i] = findata.Num(bar.High)
		lows[i] = findata.Num(bar.Low)
		volumes[i] = findata.Num(bar.Volume)
	}

	if len(prices) < 10 {
		return SentimentResult{
			Company: upper(symbol),
			Error:   fmt.Sprintf("insufficient data: need at least 10 periods, got %d", len(prices)),
		}
	}

	score := 0

	// 1. Price trend.
	current := prices[0]
	start := prices[len(prices)-1]
	changePct := (current - start) / start * 100
	switch {
	case changePct > 3:
		score += 30
	case changePct > 1:
		score += 15
	case changePct < -3:
		score -= 30
	case changePct < -1:
		score -= 15
	}

	// 2. Momentum from up vs down bars (newest first, so up means the newer
	// close is higher than the one after it).
	upDays := 0
	for i := 0; i < len(prices)-1; i++ {
		if prices[i] > prices[i+1] {
			upDays++
		}
	}
	downDays := len(prices) - 1 - upDays

	momentum := "Neutral"
	switch {
	case float64(upDays) > float64(downDays)*1.5:
		score += 25
		momentum = "Strong Positive"
	case upDays > downDays:
		score += 12
		momentum = "Positive"
	case float64(downDays) > float64(upDays)*1.5:
		score -= 25
		momentum = "Strong Negative"
	case downDays > upDays:
		score -= 12
		momentum = "Negative"
	}

	// 3. Volume conviction.
	avgVolume := mean(volumes)
	recentVolume := mean(volumes[:min(10, len(volumes))])
	volumeRatio := 1.0
	if avgVolume > 0 {
		volumeRatio = recentVolume / avgVolume
	}

	volumeSignal := "Neutral"
	switch {
	case volumeRatio > 1.3 && changePct > 0:
		score += 20
		volumeSignal = "Strong Accumulation"
	case volumeRatio > 1.1 && changePct > 0:
		score += 10
		volumeSignal = "Accumulation"
	case volumeRatio > 1.3 && changePct < 0:
		score -= 20
		volumeSignal = "Strong Distribution"
	case volumeRatio > 1.1 && changePct < 0:
		score -= 10
		volumeSignal = "Distribution"
	}

	// 4. Buying pressure: where closes sit inside bar ranges over the
	// newest 10 bars.
	pressure := 0
	for i := 0; i < min(10, len(prices)); i++ {
		rangeSize := highs[i] - lows[i]
		if rangeSize <= 0 {
			continue
		}
		position := (prices[i] - lows[i]) / rangeSize
		if position > 0.7 {
			pressure++
		} else if position < 0.3 {
			pressure--
		}
	}

	buying, selling := "Moderate", "Moderate"
	switch {
	case pressure > 5:
		score += 15
		buying, selling = "Strong", "Weak"
	case pressure > 2:
		score += 8
		buying, selling = "Moderate", "Weak"
	case pressure < -5:
		score -= 15
		buying, selling = "Weak", "Strong"
	case pressure < -2:
		score -= 8
		buying, selling = "Weak", "Moderate"
	}

	// 5. Volatility penalty.
	cov := 0.0
	if avg := mean(prices); avg > 0 {
		cov = stddev(prices) / avg * 100
	}
	volatilityImpact := "Low volatility indicates stability"
	riskLevel := "Low"
	switch {
	case cov > 3:
		score -= 10
		volatilityImpact = "High volatility indicates uncertainty"
		riskLevel = "High"
	case cov > 1.5:
		score -= 5
		volatilityImpact = "Moderate volatility"
		riskLevel = "Moderate"
	}

	overall, confidence, recommendation := sentimentVerdict(score)
	priceAction := priceActionLabel(upDays, downDays, changePct)

	summary := strings.Join([]string{
		fmt.Sprintf("%s sentiment with %s confidence.", overall, strings.ToLower(confidence)),
		fmt.Sprintf("Sentiment score: %d/100.", score),
		fmt.Sprintf("Price has %s by %.2f%% over the period.", direction(changePct), abs(changePct)),
		fmt.Sprintf("%s buying pressure vs %s selling pressure.", buying, strings.ToLower(selling)),
		fmt.Sprintf("Volume indicates %s.", strings.ToLower(volumeSignal)),
		volatilityImpact + ".",
		fmt.Sprintf("Risk level: %s.", riskLevel),
	}, " ")

	return SentimentResult{
		Company: upper(symbol),
		SentimentReport: &SentimentReport{
			Period:            fmt.Sprintf("%d intervals", lookback),
			AnalysisTimeframe: fmt.Sprintf("%s to %s", timestamps[len(timestamps)-1], timestamps[0]),
			Sentiment: SentimentAnalysis{
				OverallSentiment: overall,
				SentimentScore:   score,
				Confidence:       confidence,
				RiskLevel:        riskLevel,
			},
			Signals: MarketSignals{
				BuyingPressure:    buying,
				SellingPressure:   selling,
				VolumeSignal:      volumeSignal,
				MomentumIndicator: momentum,
			},
			PriceMetrics: SentimentPriceMetrics{
				CurrentPrice:       findata.Round2(current),
				PriceChange:        findata.Round2(current - start),
				PriceChangePercent: findata.Percent(changePct),
				PriceAction:        priceAction,
				UpDays:             upDays,
				DownDays:           downDays,
			},
			VolumeMetrics: SentimentVolumeMetrics{
				AverageVolume: int64(avgVolume),
				RecentVolume:  int64(recentVolume),
				VolumeRatio:   findata.Round2(volumeRatio),
			},
			Recommendation: recommendation,
			Summary:        summary,
		},
	}
}

func sentimentVerdict(score int) (sentiment, confidence, recommendation string) {
	switch {
	case score > 50:
		return "Strong Bullish", "High", "Strong buy signal - Consider accumulating position"
	case score > 25:
		return "Bullish", "Medium-High", "Buy signal - Consider entering or adding to position"
	case score > 10:
		return "Moderately Bullish", "Medium", "Cautiously optimistic - Consider buying on dips"
	case score < -50:
		return "Strong Bearish", "High", "Strong sell signal - Consider reducing exposure"
	case score < -25:
		return "Bearish", "Medium-High", "Sell signal - Consider exiting position"
	case score < -10:
		return "Moderately Bearish", "Medium", "Cautiously pessimistic - Avoid new positions"
	default:
		return "Neutral", "Low", "Hold and wait for clearer signals"
	}
}

func priceActionLabel(upDays, downDays int, changePct float64) string {
	switch {
	case upDays > downDays && changePct > 0:
		return "Consistent upward movement with positive momentum"
	case downDays > upDays && changePct < 0:
		return "Consistent downward movement with negative momentum"
	case abs(changePct) < 1:
		return "Sideways consolidation with no clear direction"
	default:
		return "Mixed signals with volatile price swings"
	}
}

func direction(changePct float64) string {
	if changePct > 0 {
		return "increased"
	}
	return "decreased"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
