package fundamentals

import "github.com/stockcouncil/StockCouncilGo/internal/findata"

type DividendMetrics struct {
	DividendPerShare    float64 `json:"DividendPerShare"`
	DividendYield       string  `json:"DividendYield"`
	PayoutRatio         string  `json:"PayoutRatio"`
	ExDividendDate      string  `json:"ExDividendDate"`
	DividendPaymentDate string  `json:"DividendPaymentDate"`
	CurrentStockPrice   float64 `json:"CurrentStockPrice"`
}

type DividendResult struct {
	Company string `json:"company"`
	*DividendMetrics
	Error string `json:"error,omitempty"`
}

// Dividends derives yield and payout from the overview. The share price is
// backed out of market cap over shares outstanding since the overview
// carries no quote.
func (s *Service) Dividends(symbol string) DividendResult {
	ov, err := s.loader.Overview(symbol)
	if err != nil {
		return DividendResult{Company: upper(symbol), Error: err.Error()}
	}

	dps := findata.Num(ov.DividendPerShare)
	shares := findata.Num(ov.SharesOutstanding)
	eps := findata.Num(ov.EPS)

	var price, yield, payout float64
	if shares > 0 {
		price = findata.Num(ov.MarketCapitalization) / shares
	}
	if price > 0 {
		yield = dps / price * 100
	}
	if eps > 0 {
		payout = dps / eps * 100
	}

	return DividendResult{
		Company: ov.Symbol,
		DividendMetrics: &DividendMetrics{
			DividendPerShare:    dps,
			DividendYield:       findata.Percent(yield),
			PayoutRatio:         findata.Percent(payout),
			ExDividendDate:      orNA(ov.ExDividendDate),
			DividendPaymentDate: orNA(ov.DividendDate),
			CurrentStockPrice:   findata.Round2(price),
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
