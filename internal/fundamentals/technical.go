package fundamentals

import "github.com/stockcouncil/StockCouncilGo/internal/findata"

type TechnicalOverview struct {
	SMA50      float64 `json:"SMA_50"`
	SMA200     float64 `json:"SMA_200"`
	Week52High float64 `json:"52WeekHigh"`
	Week52Low  float64 `json:"52WeekLow"`
	Beta       float64 `json:"Beta"`
	Note       string  `json:"note"`
}

type TechnicalOverviewResult struct {
	Symbol string `json:"symbol"`
	*TechnicalOverview
	Error string `json:"error,omitempty"`
}

// Technical reports the long-horizon indicators published in the overview.
// Intraday indicators (RSI, MACD) live on the market data server.
func (s *Service) Technical(symbol string) TechnicalOverviewResult {
	ov, err := s.loader.Overview(symbol)
	if err != nil {
		return TechnicalOverviewResult{Symbol: upper(symbol), Error: err.Error()}
	}
	return TechnicalOverviewResult{
		Symbol: ov.Symbol,
		TechnicalOverview: &TechnicalOverview{
			SMA50:      findata.Num(ov.FiftyDayMovingAverage),
			SMA200:     findata.Num(ov.TwoHundredDayMovingAverage),
			Week52High: findata.Num(ov.Week52High),
			Week52Low:  findata.Num(ov.Week52Low),
			Beta:       findata.Num(ov.Beta),
			Note:       "RSI and MACD require intraday time series data; use the market data tools",
		},
	}
}
