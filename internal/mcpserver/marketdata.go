package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stockcouncil/StockCouncilGo/internal/marketdata"
)

// NewMarketDataServer registers the intraday analysis tools.
func NewMarketDataServer(svc *marketdata.Service) (*mcp.Server, error) {
	registrations := []registration{
		{
			tool: &mcp.Tool{
				Name:        "get_stock_price",
				Description: "Latest intraday price with OHLCV, previous close and change from it.",
			},
			handler: mcp.ToolHandlerFor[SymbolInput, marketdata.PriceResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input SymbolInput) (*mcp.CallToolResult, marketdata.PriceResult, error) {
					return nil, svc.Price(input.Symbol), nil
				}),
		},
		{
			tool: &mcp.Tool{
				Name:        "get_technical_indicators",
				Description: "Intraday RSI, MACD, SMA and EMA plus beta and 52-week range context.",
			},
			handler: mcp.ToolHandlerFor[PeriodInput, marketdata.IndicatorsResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input PeriodInput) (*mcp.CallToolResult, marketdata.IndicatorsResult, error) {
					return nil, svc.Indicators(input.Symbol, input.Period), nil
				}),
		},
		{
			tool: &mcp.Tool{
				Name:        "get_trend_summary",
				Description: "Trend direction, strength, momentum, support/resistance and volume trend over a lookback window (default 50 bars).",
			},
			handler: mcp.ToolHandlerFor[LookbackInput, marketdata.TrendResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input LookbackInput) (*mcp.CallToolResult, marketdata.TrendResult, error) {
					return nil, svc.TrendSummary(input.Symbol, input.Lookback), nil
				}),
		},
		{
			tool: &mcp.Tool{
				Name:        "get_market_sentiment",
				Description: "Weighted sentiment score in [-100, 100] from price trend, momentum, volume, buying pressure and volatility (default 30 bars).",
			},
			handler: mcp.ToolHandlerFor[LookbackInput, marketdata.SentimentResult](
				func(ctx context.Context, _ *mcp.CallToolRequest, input LookbackInput) (*mcp.CallToolResult, marketdata.SentimentResult, error) {
					return nil, svc.Sentiment(input.Symbol, input.Lookback), nil
				}),
		},
	}

	return buildServer("marketdata-mcp", registrations)
}
