package marketdata

import (
	"fmt"

	"github.com/stockcouncil/StockCouncilGo/internal/findata"
)

// MACD carries the MACD line, its signal and the histogram between them.
type MACD struct {
	Line      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

type TechnicalIndicators struct {
	RSI           float64 `json:"RSI"`
	RSIPeriod     int     `json:"RSI_Period"`
	MACD          MACD    `json:"MACD"`
	SMA           float64 `json:"SMA"`
	EMA           float64 `json:"EMA"`
	Beta          float64 `json:"Beta"`
	Week52High    float64 `json:"52WeekHigh"`
	Week52Low     float64 `json:"52WeekLow"`
	RangePosition string  `json:"positionIn52WeekRange"`
}

type IndicatorAnalysis struct {
	Momentum       string `json:"momentum"`
	ShortTermTrend string `json:"shortTermTrend"`
	MACDSignal     string `json:"macdSignal"`
	Volatility     string `json:"volatility"`
	TradingSignal  string `json:"tradingSignal"`
}

type IndicatorsReport struct {
	Timestamp    string              `json:"timestamp"`
	CurrentPrice float64             `json:"currentPrice"`
	Indicators   TechnicalIndicators `json:"technicalIndicators"`
	Analysis     IndicatorAnalysis   `json:"analysis"`
}

type IndicatorsResult struct {
	Company string `json:"company"`
	*IndicatorsReport
	Error string `json:"error,omitempty"`
}

// Indicator functions take prices in chronological order, oldest first.

// SMA is the mean of the newest period closes.
func SMA(prices []float64, period int) float64 {
	if len(prices) < period || period <= 0 {
		return 0
	}
	return findata.Round2(mean(prices[len(prices)-period:]))
}

// EMA seeds with the SMA of the oldest period closes, then folds the rest
// forward with the standard 2/(period+1) multiplier.
func EMA(prices []float64, period int) float64 {
	if len(prices) < period || period <= 0 {
		return 0
	}
	multiplier := 2 / float64(period+1)
	ema := mean(prices[:period])
	for _, p := range prices[period:] {
		ema = (p-ema)*multiplier + ema
	}
	return findata.Round2(ema)
}

// RSI computes the relative strength index from the first period of price
// changes. It reports a neutral 50 when there is not enough history and
// 100 when the window shows no losses.
func RSI(prices []float64, period int) float64 {
	if len(prices) < period+1 || period <= 0 {
		return 50.0
	}

	gains := make([]float64, 0, len(prices)-1)
	losses := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}
	if len(gains) < period {
		return 50.0
	}

	avgGain := mean(gains[:period])
	avgLoss := mean(losses[:period])
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return findata.Round2(100 - 100/(1+rs))
}

// ComputeMACD derives the MACD line from the 12 and 26 period EMAs. The
// signal line is approximated as 90% of the MACD line rather than a 9
// period EMA of it.
func ComputeMACD(prices []float64) MACD {
	if len(prices) < 26 {
		return MACD{}
	}
	line := EMA(prices, 12) - EMA(prices, 26)
	signal := line * 0.9
	return MACD{
		Line:      findata.Round2(line),
		Signal:    findata.Round2(signal),
		Histogram: findata.Round2(line - signal),
	}
}

// Indicators computes the intraday technical picture for symbol. Beta and
// the 52-week range come from the overview dataset.
func (s *Service) Indicators(symbol string, period int) IndicatorsResult {
	if period <= 0 {
		period = 14
	}

	series, err := s.loader.Intraday(symbol)
	if err != nil {
		return IndicatorsResult{Company: upper(symbol), Error: err.Error()}
	}
	overview, err := s.loader.Overview(symbol)
	if err != nil {
		return IndicatorsResult{Company: upper(symbol), Error: err.Error()}
	}

	// Oldest first for the indicator math.
	prices := series.Closes(0)
	for i, j := 0, len(prices)-1; i < j; i, j = i+1, j-1 {
		prices[i], prices[j] = prices[j], prices[i]
	}
	current := prices[len(prices)-1]

	rsi := RSI(prices, period)
	macd := ComputeMACD(prices)
	sma := SMA(prices, period)
	ema := EMA(prices, period)

	beta := findata.Num(overview.Beta)
	high52 := findata.Num(overview.Week52High)
	low52 := findata.Num(overview.Week52Low)

	var rangePosition float64
	if high52 != low52 {
		rangePosition = (current - low52) / (high52 - low52) * 100
	}

	momentum, signal := momentumAnalysis(rsi)

	trend := "Sideways"
	if current > sma && current > ema {
		trend = "Short-term Uptrend"
	} else if current < sma && current < ema {
		trend = "Short-term Downtrend"
	}

	return IndicatorsResult{
		Company: upper(symbol),
		IndicatorsReport: &IndicatorsReport{
			Timestamp:    series.Timestamps()[0],
			CurrentPrice: findata.Round2(current),
			Indicators: TechnicalIndicators{
				RSI:           rsi,
				RSIPeriod:     period,
				MACD:          macd,
				SMA:           sma,
				EMA:           ema,
				Beta:          beta,
				Week52High:    high52,
				Week52Low:     low52,
				RangePosition: fmt.Sprintf("%.1f%%", rangePosition),
			},
			Analysis: IndicatorAnalysis{
				Momentum:       momentum,
				ShortTermTrend: trend,
				MACDSignal:     macdSignal(macd),
				Volatility:     betaVolatility(beta),
				TradingSignal:  signal,
			},
		},
	}
}

func momentumAnalysis(rsi float64) (momentum, signal string) {
	switch {
	case rsi > 70:
		return "Overbought", "Consider selling or taking profits"
	case rsi < 30:
		return "Oversold", "Consider buying on dips"
	case rsi > 60:
		return "Bullish", "Upward momentum"
	case rsi < 40:
		return "Bearish", "Downward pressure"
	default:
		return "Neutral", "Hold"
	}
}

func macdSignal(m MACD) string {
	switch {
	case m.Histogram > 0.5:
		return "Strong Bullish - MACD well above signal"
	case m.Histogram > 0:
		return "Bullish - MACD above signal"
	case m.Histogram < -0.5:
		return "Strong Bearish - MACD well below signal"
	case m.Histogram < 0:
		return "Bearish - MACD below signal"
	default:
		return "Neutral"
	}
}

func betaVolatility(beta float64) string {
	switch {
	case beta > 1.2:
		return "High - More volatile than market"
	case beta < 0.8:
		return "Low - Less volatile than market"
	case beta > 1.0:
		return "Moderate-High"
	default:
		return "Moderate-Low"
	}
}
