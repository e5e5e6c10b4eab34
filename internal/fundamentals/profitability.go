package fundamentals

import "github.com/stockcouncil/StockCouncilGo/internal/findata"

type MarginsYear struct {
	FiscalYear      string `json:"fiscalYear"`
	GrossMargin     string `json:"GrossMargin"`
	OperatingMargin string `json:"OperatingMargin"`
	NetMargin       string `json:"NetMargin"`
	ROE             string `json:"ROE"`
	ROA             string `json:"ROA"`
}

type ProfitabilityResult struct {
	Company string `json:"company"`
	*MarginsYear
	YearRange int           `json:"yearRange,omitempty"`
	Data      []MarginsYear `json:"data,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Profitability computes margin and return ratios per fiscal year. A
// single-year request flattens the year into the result; multi-year
// requests wrap the years in Data.
func (s *Service) Profitability(symbol string, yearRange int) ProfitabilityResult {
	yearRange = normalizeYears(yearRange)

	is, err := s.loader.IncomeStatement(symbol)
	if err != nil {
		return ProfitabilityResult{Company: upper(symbol), Error: err.Error()}
	}
	bs, err := s.loader.BalanceSheet(symbol)
	if err != nil {
		return ProfitabilityResult{Company: upper(symbol), Error: err.Error()}
	}

	maxYears := yearRange
	if n := len(is.AnnualReports); n < maxYears {
		maxYears = n
	}
	if n := len(bs.AnnualReports); n < maxYears {
		maxYears = n
	}
	if maxYears == 0 {
		return ProfitabilityResult{Company: upper(symbol), Error: "insufficient data"}
	}

	years := make([]MarginsYear, 0, maxYears)
	for i := 0; i < maxYears; i++ {
		years = append(years, marginsForYear(is.AnnualReports[i], bs.AnnualReports[i]))
	}

	if yearRange == 1 {
		return ProfitabilityResult{Company: is.Symbol, MarginsYear: &years[0]}
	}
	return ProfitabilityResult{Company: is.Symbol, YearRange: maxYears, Data: years}
}

func marginsForYear(is findata.IncomeReport, bs findata.BalanceReport) MarginsYear {
	revenue := findata.Num(is.TotalRevenue)
	netIncome := findata.Num(is.NetIncome)
	equity := findata.Num(bs.TotalShareholderEquity)
	assets := findata.Num(bs.TotalAssets)

	var gross, operating, net, roe, roa float64
	if revenue > 0 {
		gross = findata.Num(is.GrossProfit) / revenue * 100
		operating = findata.Num(is.OperatingIncome) / revenue * 100
		net = netIncome / revenue * 100
	}
	if equity > 0 {
		roe = netIncome / equity * 100
	}
	if assets > 0 {
		roa = netIncome / assets * 100
	}

	return MarginsYear{
		FiscalYear:      is.FiscalDateEnding,
		GrossMargin:     findata.Percent(gross),
		OperatingMargin: findata.Percent(operating),
		NetMargin:       findata.Percent(net),
		ROE:             findata.Percent(roe),
		ROA:             findata.Percent(roa),
	}
}
