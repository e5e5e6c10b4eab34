package fundamentals

import "github.com/stockcouncil/StockCouncilGo/internal/findata"

type GrowthYear struct {
	FiscalYear            string `json:"fiscalYear"`
	RevenueGrowth         string `json:"RevenueGrowth"`
	EPSGrowth             string `json:"EPSGrowth"`
	OperatingIncomeGrowth string `json:"OperatingIncomeGrowth"`
}

type GrowthResult struct {
	Company string `json:"company"`
	*GrowthYear
	YearRange int          `json:"yearRange,omitempty"`
	Data      []GrowthYear `json:"data,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// Growth computes year-over-year growth for revenue, operating income and
// reported EPS. EPS values are matched to income statement years by
// fiscalDateEnding; years with no matching earnings entry are skipped.
func (s *Service) Growth(symbol string, yearRange int) GrowthResult {
	yearRange = normalizeYears(yearRange)

	is, err := s.loader.IncomeStatement(symbol)
	if err != nil {
		return GrowthResult{Company: upper(symbol), Error: err.Error()}
	}
	earnings, err := s.loader.Earnings(symbol)
	if err != nil {
		return GrowthResult{Company: upper(symbol), Error: err.Error()}
	}

	maxYears := yearRange
	if n := len(is.AnnualReports) - 1; n < maxYears {
		maxYears = n
	}
	if maxYears <= 0 {
		return GrowthResult{Company: upper(symbol), Error: "insufficient data: need at least 2 years of reports"}
	}

	epsByYear := make(map[string]float64, len(earnings.AnnualEarnings))
	for _, e := range earnings.AnnualEarnings {
		epsByYear[e.FiscalDateEnding] = findata.Num(e.ReportedEPS)
	}

	years := make([]GrowthYear, 0, maxYears)
	for i := 0; i < maxYears; i++ {
		cur := is.AnnualReports[i]
		prev := is.AnnualReports[i+1]

		epsCur, okCur := epsByYear[cur.FiscalDateEnding]
		epsPrev, okPrev := epsByYear[prev.FiscalDateEnding]
		if !okCur || !okPrev {
			continue
		}

		years = append(years, GrowthYear{
			FiscalYear:            cur.FiscalDateEnding,
			RevenueGrowth:         findata.PercentYoY(growthRate(findata.Num(cur.TotalRevenue), findata.Num(prev.TotalRevenue))),
			EPSGrowth:             findata.PercentYoY(growthRate(epsCur, epsPrev)),
			OperatingIncomeGrowth: findata.PercentYoY(growthRate(findata.Num(cur.OperatingIncome), findata.Num(prev.OperatingIncome))),
		})
	}
	if len(years) == 0 {
		return GrowthResult{Company: upper(symbol), Error: "could not match earnings data with income statement years"}
	}

	if yearRange == 1 {
		return GrowthResult{Company: is.Symbol, GrowthYear: &years[0]}
	}
	return GrowthResult{Company: is.Symbol, YearRange: len(years), Data: years}
}

func growthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
