package findata

import "sort"

// Overview mirrors the Alpha Vantage OVERVIEW payload. All numeric fields
// arrive as strings ("None" and "-" included), so parsing happens at use.
type Overview struct {
	Symbol                     string `json:"Symbol"`
	Name                       string `json:"Name"`
	PERatio                    string `json:"PERatio"`
	PriceToBookRatio           string `json:"PriceToBookRatio"`
	PEGRatio                   string `json:"PEGRatio"`
	EVToEBITDA                 string `json:"EVToEBITDA"`
	PriceToSalesRatioTTM       string `json:"PriceToSalesRatioTTM"`
	TrailingPE                 string `json:"TrailingPE"`
	ForwardPE                  string `json:"ForwardPE"`
	MarketCapitalization       string `json:"MarketCapitalization"`
	SharesOutstanding          string `json:"SharesOutstanding"`
	EPS                        string `json:"EPS"`
	DividendPerShare           string `json:"DividendPerShare"`
	ExDividendDate             string `json:"ExDividendDate"`
	DividendDate               string `json:"DividendDate"`
	FiftyDayMovingAverage      string `json:"50DayMovingAverage"`
	TwoHundredDayMovingAverage string `json:"200DayMovingAverage"`
	Week52High                 string `json:"52WeekHigh"`
	Week52Low                  string `json:"52WeekLow"`
	Beta                       string `json:"Beta"`
}

// IncomeReport is one fiscal year from INCOME_STATEMENT annualReports.
type IncomeReport struct {
	FiscalDateEnding           string `json:"fiscalDateEnding"`
	TotalRevenue               string `json:"totalRevenue"`
	GrossProfit                string `json:"grossProfit"`
	OperatingIncome            string `json:"operatingIncome"`
	NetIncome                  string `json:"netIncome"`
	CostOfGoodsAndServicesSold string `json:"costofGoodsAndServicesSold"`
	InterestExpense            string `json:"interestExpense"`
	EBITDA                     string `json:"ebitda"`
}

type IncomeStatement struct {
	Symbol        string         `json:"symbol"`
	AnnualReports []IncomeReport `json:"annualReports"`
}

// BalanceReport is one fiscal year from BALANCE_SHEET annualReports.
type BalanceReport struct {
	FiscalDateEnding        string `json:"fiscalDateEnding"`
	TotalAssets             string `json:"totalAssets"`
	TotalCurrentAssets      string `json:"totalCurrentAssets"`
	TotalCurrentLiabilities string `json:"totalCurrentLiabilities"`
	Inventory               string `json:"inventory"`
	CashAndCashEquivalents  string `json:"cashAndCashEquivalentsAtCarryingValue"`
	CurrentNetReceivables   string `json:"currentNetReceivables"`
	TotalShareholderEquity  string `json:"totalShareholderEquity"`
	ShortLongTermDebtTotal  string `json:"shortLongTermDebtTotal"`
}

type BalanceSheet struct {
	Symbol        string          `json:"symbol"`
	AnnualReports []BalanceReport `json:"annualReports"`
}

type AnnualEPS struct {
	FiscalDateEnding string `json:"fiscalDateEnding"`
	ReportedEPS      string `json:"reportedEPS"`
}

type Earnings struct {
	Symbol         string      `json:"symbol"`
	AnnualEarnings []AnnualEPS `json:"annualEarnings"`
}

// IntradayBar keeps the Alpha Vantage numbered field names as-is.
type IntradayBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// IntradaySeries is the TIME_SERIES_INTRADAY payload. Bars are keyed by
// timestamp strings like "2024-01-15 16:00:00" which sort lexically.
type IntradaySeries struct {
	MetaData map[string]string      `json:"Meta Data"`
	Series   map[string]IntradayBar `json:"Time Series (1min)"`
}

// Timestamps returns the bar timestamps sorted newest first.
func (s *IntradaySeries) Timestamps() []string {
	ts := make([]string, 0, len(s.Series))
	for k := range s.Series {
		ts = append(ts, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ts)))
	return ts
}

// Symbol reads "2. Symbol" from the metadata block.
func (s *IntradaySeries) Symbol() string {
	return s.MetaData["2. Symbol"]
}

// LastRefreshed reads "3. Last Refreshed" from the metadata block.
func (s *IntradaySeries) LastRefreshed() string {
	return s.MetaData["3. Last Refreshed"]
}

// Closes returns closing prices newest first, capped at limit (0 = all).
func (s *IntradaySeries) Closes(limit int) []float64 {
	ts := s.Timestamps()
	if limit > 0 && len(ts) > limit {
		ts = ts[:limit]
	}
	out := make([]float64, len(ts))
	for i, k := range ts {
		out[i] = Num(s.Series[k].Close)
	}
	return out
}
