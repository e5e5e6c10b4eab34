package fundamentals

import "github.com/stockcouncil/StockCouncilGo/internal/findata"

type LeverageYear struct {
	FiscalYear       string  `json:"fiscalYear"`
	DebtToEquity     float64 `json:"DebtToEquity"`
	InterestCoverage float64 `json:"InterestCoverage"`
	DebtToEBITDA     float64 `json:"DebtToEBITDA"`
}

type LeverageResult struct {
	Company string `json:"company"`
	*LeverageYear
	YearRange int            `json:"yearRange,omitempty"`
	Data      []LeverageYear `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Leverage computes debt ratios. Total debt is shortLongTermDebtTotal from
// the balance sheet.
func (s *Service) Leverage(symbol string, yearRange int) LeverageResult {
	yearRange = normalizeYears(yearRange)

	bs, err := s.loader.BalanceSheet(symbol)
	if err != nil {
		return LeverageResult{Company: upper(symbol), Error: err.Error()}
	}
	is, err := s.loader.IncomeStatement(symbol)
	if err != nil {
		return LeverageResult{Company: upper(symbol), Error: err.Error()}
	}

	maxYears := yearRange
	if n := len(bs.AnnualReports); n < maxYears {
		maxYears = n
	}
	if n := len(is.AnnualReports); n < maxYears {
		maxYears = n
	}
	if maxYears == 0 {
		return LeverageResult{Company: upper(symbol), Error: "insufficient data"}
	}

	years := make([]LeverageYear, 0, maxYears)
	for i := 0; i < maxYears; i++ {
		b := bs.AnnualReports[i]
		r := is.AnnualReports[i]

		debt := findata.Num(b.ShortLongTermDebtTotal)
		equity := findata.Num(b.TotalShareholderEquity)
		interest := findata.Num(r.InterestExpense)
		ebitda := findata.Num(r.EBITDA)

		var de, coverage, dEBITDA float64
		if equity > 0 {
			de = findata.Round2(debt / equity)
		}
		if interest > 0 {
			coverage = findata.Round2(findata.Num(r.OperatingIncome) / interest)
		}
		if ebitda > 0 {
			dEBITDA = findata.Round2(debt / ebitda)
		}
		years = append(years, LeverageYear{
			FiscalYear:       b.FiscalDateEnding,
			DebtToEquity:     de,
			InterestCoverage: coverage,
			DebtToEBITDA:     dEBITDA,
		})
	}

	if yearRange == 1 {
		return LeverageResult{Company: bs.Symbol, LeverageYear: &years[0]}
	}
	return LeverageResult{Company: bs.Symbol, YearRange: maxYears, Data: years}
}
