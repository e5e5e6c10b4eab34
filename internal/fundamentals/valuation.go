package fundamentals

import "github.com/stockcouncil/StockCouncilGo/internal/findata"

type ValuationMetrics struct {
	PE           float64 `json:"PE"`
	PB           float64 `json:"PB"`
	PEG          float64 `json:"PEG"`
	EVEBITDA     float64 `json:"EV_EBITDA"`
	PriceToSales float64 `json:"PriceToSales"`
	TrailingPE   float64 `json:"TrailingPE"`
	ForwardPE    float64 `json:"ForwardPE"`
	MarketCap    float64 `json:"MarketCap"`
}

type ValuationResult struct {
	Company string `json:"company"`
	*ValuationMetrics
	Error string `json:"error,omitempty"`
}

// Valuation reads pricing multiples straight from the company overview.
func (s *Service) Valuation(symbol string) ValuationResult {
	ov, err := s.loader.Overview(symbol)
	if err != nil {
		return ValuationResult{Company: upper(symbol), Error: err.Error()}
	}
	return ValuationResult{
		Company: ov.Symbol,
		ValuationMetrics: &ValuationMetrics{
			PE:           findata.Num(ov.PERatio),
			PB:           findata.Num(ov.PriceToBookRatio),
			PEG:          findata.Num(ov.PEGRatio),
			EVEBITDA:     findata.Num(ov.EVToEBITDA),
			PriceToSales: findata.Num(ov.PriceToSalesRatioTTM),
			TrailingPE:   findata.Num(ov.TrailingPE),
			ForwardPE:    findata.Num(ov.ForwardPE),
			MarketCap:    findata.Num(ov.MarketCapitalization),
		},
	}
}
