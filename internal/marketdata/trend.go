package marketdata

import (
	"fmt"
	"strings"

	"github.com/stockcouncil/StockCouncilGo/internal/findata"
)

type TrendAnalysis struct {
	Direction     string `json:"trendDirection"`
	Strength      string `json:"trendStrength"`
	Momentum      string `json:"momentum"`
	RecentPattern string `json:"recentPattern"`
}

type TrendPriceMetrics struct {
	CurrentPrice       float64 `json:"currentPrice"`
	StartPrice         float64 `json:"startPrice"`
	PriceChange        float64 `json:"priceChange"`
	PriceChangePercent string  `json:"priceChangePercent"`
	AveragePrice       float64 `json:"averagePrice"`
	Volatility         string  `json:"volatility"`
	StandardDeviation  float64 `json:"standardDeviation"`
}

type SupportResistance struct {
	SupportLevel           float64 `json:"supportLevel"`
	ResistanceLevel        float64 `json:"resistanceLevel"`
	DistanceFromSupport    string  `json:"distanceFromSupport"`
	DistanceFromResistance string  `json:"distanceFromResistance"`
}

type VolumeAnalysis struct {
	AverageVolume int64  `json:"averageVolume"`
	RecentVolume  int64  `json:"recentVolume"`
	VolumeTrend   string `json:"volumeTrend"`
}

type TrendReport struct {
	Period            string            `json:"period"`
	AnalysisTimeframe string            `json:"analysisTimeframe"`
	Trend             TrendAnalysis     `json:"trendAnalysis"`
	PriceMetrics      TrendPriceMetrics `json:"priceMetrics"`
	SupportResistance SupportResistance `json:"supportResistance"`
	Volume            VolumeAnalysis    `json:"volumeAnalysis"`
	Summary           string            `json:"summary"`
}

type TrendResult struct {
	Company string `json:"company"`
	*TrendReport
	Error string `json:"error,omitempty"`
}

// TrendSummary classifies the recent price action over lookback bars. The
// window splits into three equal segments whose averages must be strictly
// ordered to call an uptrend or downtrend.
func (s *Service) TrendSummary(symbol string, lookback int) TrendResult {
	if lookback <= 0 {
		lookback = 50
	}

	series, err := s.loader.Intraday(symbol)
	if err != nil {
		return TrendResult{Company: upper(symbol), Error: err.Error()}
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
		return TrendResult{
			Company: upper(symbol),
			Error:   fmt.Sprintf("insufficient data: need at least 10 periods, got %d", len(prices)),
		}
	}

	current := prices[0]
	start := prices[len(prices)-1]
	change := current - start
	var changePct float64
	if start != 0 {
		changePct = change / start * 100
	}

	avgPrice := mean(prices)
	std := stddev(prices)

	support := lows[0]
	for _, l := range lows {
		if l < support {
			support = l
		}
	}
	resistance := highs[0]
	for _, h := range highs {
		if h > resistance {
			resistance = h
		}
	}

	direction := trendDirection(prices)
	strength := trendStrength(changePct)
	volatility := volatilityLabel(std, avgPrice)
	momentum := trendMomentum(prices, direction)
	pattern := recentPattern(direction, momentum, volatility)

	avgVolume := mean(volumes)
	recentVolume := mean(volumes[:min(5, len(volumes))])
	volumeTrend := "Average"
	if recentVolume > avgVolume*1.2 {
		volumeTrend = "Increasing (Strong interest)"
	} else if recentVolume < avgVolume*0.8 {
		volumeTrend = "Decreasing (Weak interest)"
	}

	distSupport := (current - support) / current * 100
	distResistance := (resistance - current) / current * 100

	summary := trendSummaryText(direction, strength, momentum, change, changePct, volatility, volumeTrend, support, resistance, distSupport, distResistance)

	return TrendResult{
		Company: upper(symbol),
		TrendReport: &TrendReport{
			Period:            fmt.Sprintf("%d intervals", lookback),
			AnalysisTimeframe: fmt.Sprintf("%s to %s", timestamps[len(timestamps)-1], timestamps[0]),
			Trend: TrendAnalysis{
				Direction:     direction,
				Strength:      strength,
				Momentum:      momentum,
				RecentPattern: pattern,
			},
			PriceMetrics: TrendPriceMetrics{
				CurrentPrice:       findata.Round2(current),
				StartPrice:         findata.Round2(start),
				PriceChange:        findata.Round2(change),
				PriceChangePercent: findata.Percent(changePct),
				AveragePrice:       findata.Round2(avgPrice),
				Volatility:         volatility,
				StandardDeviation:  findata.Round2(std),
			},
			SupportResistance: SupportResistance{
				SupportLevel:           findata.Round2(support),
				ResistanceLevel:        findata.Round2(resistance),
				DistanceFromSupport:    findata.Percent(distSupport),
				DistanceFromResistance: findata.Percent(distResistance),
			},
			Volume: VolumeAnalysis{
				AverageVolume: int64(avgVolume),
				RecentVolume:  int64(recentVolume),
				VolumeTrend:   volumeTrend,
			},
			Summary: summary,
		},
	}
}

// trendDirection compares three equal segment averages, newest first.
func trendDirection(prices []float64) string {
	segment := len(prices) / 3
	if segment == 0 {
		return "Sideways"
	}
	recent := mean(prices[:segment])
	middle := mean(prices[segment : 2*segment])
	older := mean(prices[2*segment:])

	switch {
	case recent > middle && middle > older:
		return "Uptrend"
	case recent < middle && middle < older:
		return "Downtrend"
	default:
		return "Sideways"
	}
}

func trendStrength(changePct float64) string {
	abs := changePct
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > 5:
		return "Strong"
	case abs > 2:
		return "Moderate"
	default:
		return "Weak"
	}
}

func volatilityLabel(std, avg float64) string {
	if avg == 0 {
		return "Low"
	}
	cov := std / avg * 100
	switch {
	case cov > 3:
		return "High"
	case cov > 1.5:
		return "Moderate"
	default:
		return "Low"
	}
}

func trendMomentum(prices []float64, direction string) string {
	recentChange := prices[0] - prices[min(5, len(prices)-1)]
	switch {
	case recentChange > 0 && direction == "Uptrend":
		return "Strong Bullish"
	case recentChange > 0:
		return "Bullish"
	case recentChange < 0 && direction == "Downtrend":
		return "Strong Bearish"
	case recentChange < 0:
		return "Bearish"
	default:
		return "Neutral"
	}
}

func recentPattern(direction, momentum, volatility string) string {
	switch {
	case direction == "Uptrend" && (momentum == "Bullish" || momentum == "Strong Bullish"):
		return "Higher highs and higher lows"
	case direction == "Downtrend" && (momentum == "Bearish" || momentum == "Strong Bearish"):
		return "Lower highs and lower lows"
	case volatility == "High":
		return "High volatility with no clear direction"
	default:
		return "Consolidation"
	}
}

func trendSummaryText(direction, strength, momentum string, change, changePct float64, volatility, volumeTrend string, support, resistance, distSupport, distResistance float64) string {
	verb := "gained"
	if change < 0 {
		verb = "lost"
		changePct = -changePct
	}
	parts := []string{
		fmt.Sprintf("%s %s with %s momentum.", strength, strings.ToLower(direction), strings.ToLower(momentum)),
		fmt.Sprintf("Price has %s %.2f%% over the period.", verb, changePct),
		fmt.Sprintf("Volatility is %s.", strings.ToLower(volatility)),
		fmt.Sprintf("Trading volume is %s.", strings.ToLower(volumeTrend)),
	}
	if distSupport < 5 {
		parts = append(parts, fmt.Sprintf("Price is near support level at $%.2f.", support))
	} else if distResistance < 5 {
		parts = append(parts, fmt.Sprintf("Price is near resistance level at $%.2f.", resistance))
	}
	return strings.Join(parts, " ")
}
