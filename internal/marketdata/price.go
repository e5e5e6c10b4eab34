package marketdata

import "github.com/stockcouncil/StockCouncilGo/internal/findata"

type PriceQuote struct {
	Symbol             string  `json:"symbol"`
	LatestPrice        float64 `json:"latestPrice"`
	Open               float64 `json:"open"`
	High               float64 `json:"high"`
	Low                float64 `json:"low"`
	Volume             int64   `json:"volume"`
	PreviousClose      float64 `json:"previousClose"`
	PriceChange        float64 `json:"priceChange"`
	PriceChangePercent string  `json:"priceChangePercent"`
	Timestamp          string  `json:"timestamp"`
	LastRefreshed      string  `json:"lastRefreshed"`
	LiveQuote          float64 `json:"liveQuote,omitempty"`
}

type PriceResult struct {
	Company string `json:"company"`
	*PriceQuote
	Error string `json:"error,omitempty"`
}

// Price reports the newest intraday bar with the change from the bar before
// it. When live quotes are enabled, the current Yahoo quote rides along as a
// cross-check field.
func (s *Service) Price(symbol string) PriceResult {
	series, err := s.loader.Intraday(symbol)
	if err != nil {
		return PriceResult{Company: upper(symbol), Error: err.Error()}
	}

	ts := series.Timestamps()
	latest := series.Series[ts[0]]
	latestClose := findata.Num(latest.Close)

	previousClose := latestClose
	if len(ts) > 1 {
		previousClose = findata.Num(series.Series[ts[1]].Close)
	}

	change := latestClose - previousClose
	var changePct float64
	if previousClose != 0 {
		changePct = change / previousClose * 100
	}

	quote := &PriceQuote{
		Symbol:             metaOr(series.Symbol(), upper(symbol)),
		LatestPrice:        findata.Round2(latestClose),
		Open:               findata.Round2(findata.Num(latest.Open)),
		High:               findata.Round2(findata.Num(latest.High)),
		Low:                findata.Round2(findata.Num(latest.Low)),
		Volume:             int64(findata.Num(latest.Volume)),
		PreviousClose:      findata.Round2(previousClose),
		PriceChange:        findata.Round2(change),
		PriceChangePercent: findata.Percent(changePct),
		Timestamp:          ts[0],
		LastRefreshed:      metaOr(series.LastRefreshed(), ts[0]),
	}

	if s.quotes.Enabled() {
		if live, err := s.quotes.LatestPrice(symbol); err == nil {
			quote.LiveQuote = findata.Round2(live)
		}
	}

	return PriceResult{Company: upper(symbol), PriceQuote: quote}
}

func metaOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
