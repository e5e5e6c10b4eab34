package fundamentals

import "github.com/stockcouncil/StockCouncilGo/internal/findata"

type LiquidityYear struct {
	FiscalYear   string  `json:"fiscalYear"`
	CurrentRatio float64 `json:"CurrentRatio"`
	QuickRatio   float64 `json:"QuickRatio"`
	CashRatio    float64 `json:"CashRatio"`
}

type LiquidityResult struct {
	Company string `json:"company"`
	*LiquidityYear
	YearRange int             `json:"yearRange,omitempty"`
	Data      []LiquidityYear `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Liquidity computes current, quick and cash ratios from the balance sheet.
func (s *Service) Liquidity(symbol string, yearRange int) LiquidityResult {
	yearRange = normalizeYears(yearRange)

	bs, err := s.loader.BalanceSheet(symbol)
	if err != nil {
		return LiquidityResult{Company: upper(symbol), Error: err.Error()}
	}

	maxYears := yearRange
	if n := len(bs.AnnualReports); n < maxYears {
		maxYears = n
	}
	if maxYears == 0 {
		return LiquidityResult{Company: upper(symbol), Error: "insufficient data"}
	}

	years := make([]LiquidityYear, 0, maxYears)
	for i := 0; i < maxYears; i++ {
		r := bs.AnnualReports[i]
		liabilities := findata.Num(r.TotalCurrentLiabilities)
		assets := findata.Num(r.TotalCurrentAssets)

		var current, quick, cash float64
		if liabilities > 0 {
			current = findata.Round2(assets / liabilities)
			quick = findata.Round2((assets - findata.Num(r.Inventory)) / liabilities)
			cash = findata.Round2(findata.Num(r.CashAndCashEquivalents) / liabilities)
		}
		years = append(years, LiquidityYear{
			FiscalYear:   r.FiscalDateEnding,
			CurrentRatio: current,
			QuickRatio:   quick,
			CashRatio:    cash,
		})
	}

	if yearRange == 1 {
		return LiquidityResult{Company: bs.Symbol, LiquidityYear: &years[0]}
	}
	return LiquidityResult{Company: bs.Symbol, YearRange: maxYears, Data: years}
}
