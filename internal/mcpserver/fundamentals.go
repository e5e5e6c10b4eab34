package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stockcouncil/StockCouncilGo/internal/fundamentals"
)

// NewFundamentalsServer registers the ratio tools. Handlers never fail the
// call for domain problems: missing files and bad data come back in the
// result's error field so the calling agent can reason about them.
func NewFundamentalsServer(svc *fundamentals.Service) (*mcp.Server, error) {
	registrations := []registration{
		{
			tool: &mcp.Tool{
				Name:        "get_valuation_ratios",
				Description: "Pricing multiples for a company: P/E, P/B, PEG, EV/EBITDA, price-to-sales, trailing and forward P/E, market cap.",
			},
			handler: mcp.ToolHandlerFor[SymbolInput, fundamentals.ValuationResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input SymbolInput) (*mcp.CallToolResult, fundamentals.ValuationResult, error) {
					return nil, svc.Valuation(input.Symbol), nil
				}),
		},
		{
			tool: &mcp.Tool{
				Name:        "get_profitability_ratios",
				Description: "Margins and returns per fiscal year: gross, operating and net margin, ROE, ROA.",
			},
			handler: mcp.ToolHandlerFor[YearRangeInput, fundamentals.ProfitabilityResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input YearRangeInput) (*mcp.CallToolResult, fundamentals.ProfitabilityResult, error) {
					return nil, svc.Profitability(input.Symbol, input.YearRange), nil
				}),
		},
		{
			tool: &mcp.Tool{
				Name:        "get_liquidity_ratios",
				Description: "Short-term solvency per fiscal year: current ratio, quick ratio, cash ratio.",
			},
			handler: mcp.ToolHandlerFor[YearRangeInput, fundamentals.LiquidityResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input YearRangeInput) (*mcp.CallToolResult, fundamentals.LiquidityResult, error) {
					return nil, svc.Liquidity(input.Symbol, input.YearRange), nil
				}),
		},
		{
			tool: &mcp.Tool{
				Name:        "get_leverage_ratios",
				Description: "Debt sustainability per fiscal year: debt-to-equity, interest coverage, debt-to-EBITDA.",
			},
			handler: mcp.ToolHandlerFor[YearRangeInput, fundamentals.LeverageResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input YearRangeInput) (*mcp.CallToolResult, fundamentals.LeverageResult, error) {
					return nil, svc.Leverage(input.Symbol, input.YearRange), nil
				}),
		},
		{
			tool: &mcp.Tool{
				Name:        "get_efficiency_ratios",
				Description: "Asset utilization per fiscal year: inventory, asset and receivable turnover. Needs at least two years of reports.",
			},
			handler: mcp.ToolHandlerFor[YearRangeInput, fundamentals.EfficiencyResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input YearRangeInput) (*mcp.CallToolResult, fundamentals.EfficiencyResult, error) {
					return nil, svc.Efficiency(input.Symbol, input.YearRange), nil
				}),
		},
		{
			tool: &mcp.Tool{
				Name:        "get_growth_metrics",
				Description: "Year-over-year growth for revenue, operating income and reported EPS.",
			},
			handler: mcp.ToolHandlerFor[YearRangeInput, fundamentals.GrowthResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input YearRangeInput) (*mcp.CallToolResult, fundamentals.GrowthResult, error) {
					return nil, svc.Growth(input.Symbol, input.YearRange), nil
				}),
		},
		{
			tool: &mcp.Tool{
				Name:        "get_dividend_metrics",
				Description: "Dividend per share, yield, payout ratio and dividend dates.",
			},
			handler: mcp.ToolHandlerFor[SymbolInput, fundamentals.DividendResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input SymbolInput) (*mcp.CallToolResult, fundamentals.DividendResult, error) {
					return nil, svc.Dividends(input.Symbol), nil
				}),
		},
		{
			tool: &mcp.Tool{
				Name:        "get_technical_overview",
				Description: "Long-horizon technicals from the company overview: 50/200-day moving averages, 52-week range, beta.",
			},
			handler: mcp.ToolHandlerFor[SymbolInput, fundamentals.TechnicalOverviewResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input SymbolInput) (*mcp.CallToolResult, fundamentals.TechnicalOverviewResult, error) {
					return nil, svc.Technical(input.Symbol), nil
				}),
		},
	}

	return buildServer("fundamentals-mcp", registrations)
}
