package fundamentals

import (
	"testing"

	"github.com/stockcouncil/StockCouncilGo/internal/findata"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(findata.NewLoader("testdata"))
}

func TestValuation(t *testing.T) {
	res := newTestService(t).Valuation("ibm")
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Company != "IBM" {
		t.Fatalf("expected company IBM, got %q", res.Company)
	}
	if res.PE != 22.5 {
		t.Fatalf("expected PE 22.5, got %v", res.PE)
	}
	if res.EVEBITDA != 14.1 {
		t.Fatalf("expected EV/EBITDA 14.1, got %v", res.EVEBITDA)
	}
	if res.MarketCap != 160000000000 {
		t.Fatalf("expected market cap 160e9, got %v", res.MarketCap)
	}
}

func TestValuationDeterministic(t *testing.T) {
	svc := newTestService(t)
	first := svc.Valuation("IBM")
	for i := 0; i < 3; i++ {
		if got := svc.Valuation("IBM"); *got.ValuationMetrics != *first.ValuationMetrics {
			t.Fatalf("valuation changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestProfitabilitySingleYear(t *testing.T) {
	res := newTestService(t).Profitability("IBM", 1)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.FiscalYear != "2023-12-31" {
		t.Fatalf("expected fiscal year 2023-12-31, got %q", res.FiscalYear)
	}
	if res.GrossMargin != "50%" {
		t.Fatalf("expected gross margin 50%%, got %q", res.GrossMargin)
	}
	if res.OperatingMargin != "20%" {
		t.Fatalf("expected operating margin 20%%, got %q", res.OperatingMargin)
	}
	if res.NetMargin != "10%" {
		t.Fatalf("expected net margin 10%%, got %q", res.NetMargin)
	}
	if res.ROE != "20%" {
		t.Fatalf("expected ROE 20%%, got %q", res.ROE)
	}
	if res.ROA != "5%" {
		t.Fatalf("expected ROA 5%%, got %q", res.ROA)
	}
	if res.YearRange != 0 || res.Data != nil {
		t.Fatal("single-year result should be flattened")
	}
}

func TestProfitabilityMultiYear(t *testing.T) {
	res := newTestService(t).Profitability("IBM", 2)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.YearRange != 2 || len(res.Data) != 2 {
		t.Fatalf("expected 2 years of data, got yearRange=%d len=%d", res.YearRange, len(res.Data))
	}
	if res.MarginsYear != nil {
		t.Fatal("multi-year result should not flatten a single year")
	}
	if res.Data[1].FiscalYear != "2022-12-31" {
		t.Fatalf("expected second year 2022-12-31, got %q", res.Data[1].FiscalYear)
	}
}

func TestLiquidity(t *testing.T) {
	res := newTestService(t).Liquidity("IBM", 1)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.CurrentRatio != 2 {
		t.Fatalf("expected current ratio 2, got %v", res.CurrentRatio)
	}
	if res.QuickRatio != 1.8 {
		t.Fatalf("expected quick ratio 1.8, got %v", res.QuickRatio)
	}
	if res.CashRatio != 0.5 {
		t.Fatalf("expected cash ratio 0.5, got %v", res.CashRatio)
	}
}

func TestLeverage(t *testing.T) {
	res := newTestService(t).Leverage("IBM", 1)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.DebtToEquity != 1.1 {
		t.Fatalf("expected debt-to-equity 1.1, got %v", res.DebtToEquity)
	}
	if res.InterestCoverage != 10 {
		t.Fatalf("expected interest coverage 10, got %v", res.InterestCoverage)
	}
	if res.DebtToEBITDA != 2.2 {
		t.Fatalf("expected debt-to-EBITDA 2.2, got %v", res.DebtToEBITDA)
	}
}

func TestEfficiencyUsesTwoYearAverages(t *testing.T) {
	res := newTestService(t).Efficiency("IBM", 1)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	// COGS 50e9 over avg inventory (6e9+4e9)/2.
	if res.InventoryTurnover != 10 {
		t.Fatalf("expected inventory turnover 10, got %v", res.InventoryTurnover)
	}
	// Revenue 100e9 over avg assets (200e9+180e9)/2.
	if res.AssetTurnover != 0.53 {
		t.Fatalf("expected asset turnover 0.53, got %v", res.AssetTurnover)
	}
	if res.ReceivableTurnover != 10 {
		t.Fatalf("expected receivable turnover 10, got %v", res.ReceivableTurnover)
	}
}

func TestEfficiencyNeedsTwoYears(t *testing.T) {
	// Requesting two computed years needs three reports; the fixture has two.
	res := newTestService(t).Efficiency("IBM", 2)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.YearRange != 1 || len(res.Data) != 1 {
		t.Fatalf("expected computation clamped to 1 year, got yearRange=%d len=%d", res.YearRange, len(res.Data))
	}
}

func TestGrowth(t *testing.T) {
	res := newTestService(t).Growth("IBM", 1)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.RevenueGrowth != "25% YoY" {
		t.Fatalf("expected revenue growth 25%% YoY, got %q", res.RevenueGrowth)
	}
	if res.EPSGrowth != "25% YoY" {
		t.Fatalf("expected EPS growth 25%% YoY, got %q", res.EPSGrowth)
	}
	if res.OperatingIncomeGrowth != "25% YoY" {
		t.Fatalf("expected operating income growth 25%% YoY, got %q", res.OperatingIncomeGrowth)
	}
}

func TestDividends(t *testing.T) {
	res := newTestService(t).Dividends("IBM")
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.CurrentStockPrice != 160 {
		t.Fatalf("expected derived price 160, got %v", res.CurrentStockPrice)
	}
	if res.DividendYield != "4%" {
		t.Fatalf("expected yield 4%%, got %q", res.DividendYield)
	}
	if res.PayoutRatio != "80%" {
		t.Fatalf("expected payout 80%%, got %q", res.PayoutRatio)
	}
	if res.ExDividendDate != "2024-02-08" {
		t.Fatalf("unexpected ex-dividend date %q", res.ExDividendDate)
	}
}

func TestTechnicalOverview(t *testing.T) {
	res := newTestService(t).Technical("IBM")
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.SMA50 != 158.2 || res.SMA200 != 147.6 {
		t.Fatalf("unexpected moving averages: %v / %v", res.SMA50, res.SMA200)
	}
	if res.Beta != 0.85 {
		t.Fatalf("expected beta 0.85, got %v", res.Beta)
	}
}

func TestMissingDataReportsError(t *testing.T) {
	svc := NewService(findata.NewLoader(t.TempDir()))
	res := svc.Valuation("ibm")
	if res.Error == "" {
		t.Fatal("expected error for missing dataset")
	}
	if res.Company != "IBM" {
		t.Fatalf("expected uppercased company in error result, got %q", res.Company)
	}
	if res.ValuationMetrics != nil {
		t.Fatal("error result should carry no metrics")
	}
}
