package fundamentals

import "github.com/stockcouncil/StockCouncilGo/internal/findata"

type EfficiencyYear struct {
	FiscalYear         string  `json:"fiscalYear"`
	InventoryTurnover  float64 `json:"InventoryTurnover"`
	AssetTurnover      float64 `json:"AssetTurnover"`
	ReceivableTurnover float64 `json:"ReceivableTurnover"`
}

type EfficiencyResult struct {
	Company string `json:"company"`
	*EfficiencyYear
	YearRange int              `json:"yearRange,omitempty"`
	Data      []EfficiencyYear `json:"data,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Efficiency computes turnover ratios against two-year averages, so each
// reported year consumes the following (older) year as its baseline.
func (s *Service) Efficiency(symbol string, yearRange int) EfficiencyResult {
	yearRange = normalizeYears(yearRange)

	bs, err := s.loader.BalanceSheet(symbol)
	if err != nil {
		return EfficiencyResult{Company: upper(symbol), Error: err.Error()}
	}
	is, err := s.loader.IncomeStatement(symbol)
	if err != nil {
		return EfficiencyResult{Company: upper(symbol), Error: err.Error()}
	}

	maxYears := yearRange
	if n := len(bs.AnnualReports) - 1; n < maxYears {
		maxYears = n
	}
	if n := len(is.AnnualReports); n < maxYears {
		maxYears = n
	}
	if maxYears <= 0 {
		return EfficiencyResult{Company: upper(symbol), Error: "insufficient data: need at least 2 years of reports"}
	}

	years := make([]EfficiencyYear, 0, maxYears)
	for i := 0; i < maxYears; i++ {
		cur := bs.AnnualReports[i]
		prev := bs.AnnualReports[i+1]
		income := is.AnnualReports[i]

		revenue := findata.Num(income.TotalRevenue)
		years = append(years, EfficiencyYear{
			FiscalYear:         cur.FiscalDateEnding,
			InventoryTurnover:  turnover(findata.Num(income.CostOfGoodsAndServicesSold), findata.Num(cur.Inventory), findata.Num(prev.Inventory)),
			AssetTurnover:      turnover(revenue, findata.Num(cur.TotalAssets), findata.Num(prev.TotalAssets)),
			ReceivableTurnover: turnover(revenue, findata.Num(cur.CurrentNetReceivables), findata.Num(prev.CurrentNetReceivables)),
		})
	}

	if yearRange == 1 {
		return EfficiencyResult{Company: bs.Symbol, EfficiencyYear: &years[0]}
	}
	return EfficiencyResult{Company: bs.Symbol, YearRange: maxYears, Data: years}
}

// turnover divides numerator by the average of the current and previous
// balance, returning 0 when the average is zero.
func turnover(numerator, current, previous float64) float64 {
	avg := (current + previous) / 2
	if avg == 0 {
		return 0
	}
	return findata.Round2(numerator / avg)
}
