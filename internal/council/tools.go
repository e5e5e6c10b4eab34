package council

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Remote tools proxy the MCP servers: the agent sees plain eino tools, the
// call goes out over the streamable HTTP session.

type symbolArgs struct {
	Symbol string `json:"symbol"`
}

type symbolYearsArgs struct {
	Symbol    string `json:"symbol"`
	YearRange int    `json:"yearRange,omitempty"`
}

type symbolPeriodArgs struct {
	Symbol string `json:"symbol"`
	Period int    `json:"period,omitempty"`
}

type symbolLookbackArgs struct {
	Symbol   string `json:"symbol"`
	Lookback int    `json:"lookback,omitempty"`
}

type toolReport struct {
	Report string `json:"report"`
}

// DialToolServer connects an MCP client session to a tool server endpoint.
func DialToolServer(ctx context.Context, endpoint string) (*mcp.ClientSession, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "stockcouncil", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect tool server %s: %w", endpoint, err)
	}
	return session, nil
}

func callRemote(ctx context.Context, session *mcp.ClientSession, name string, args any) (*toolReport, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode %s arguments: %w", name, err)
	}
	argMap := map[string]any{}
	if err := json.Unmarshal(raw, &argMap); err != nil {
		return nil, fmt.Errorf("encode %s arguments: %w", name, err)
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: argMap})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	if result.IsError {
		var msgs []string
		for _, content := range result.Content {
			if text, ok := content.(*mcp.TextContent); ok {
				msgs = append(msgs, text.Text)
			}
		}
		return nil, fmt.Errorf("%s failed: %s", name, strings.Join(msgs, "; "))
	}

	payload, err := json.Marshal(result.StructuredContent)
	if err != nil {
		return nil, fmt.Errorf("decode %s result: %w", name, err)
	}
	return &toolReport{Report: string(payload)}, nil
}

type remoteToolSpec struct {
	name      string
	desc      string
	extra     string // "", "yearRange", "period" or "lookback"
	extraDesc string
}

var fundamentalsToolSpecs = []remoteToolSpec{
	{name: "get_valuation_ratios", desc: "Valuation ratios (P/E, P/B, EV/EBITDA, PEG) for a stock"},
	{name: "get_profitability_ratios", desc: "Profitability margins and returns (gross/operating/net margin, ROE, ROA)",
		extra: "yearRange", extraDesc: "Number of fiscal years to report (default 1)"},
	{name: "get_liquidity_ratios", desc: "Liquidity ratios (current, quick, cash)",
		extra: "yearRange", extraDesc: "Number of fiscal years to report (default 1)"},
	{name: "get_leverage_ratios", desc: "Leverage ratios (debt-to-equity, interest coverage, debt/EBITDA)",
		extra: "yearRange", extraDesc: "Number of fiscal years to report (default 1)"},
	{name: "get_efficiency_ratios", desc: "Efficiency ratios (asset, inventory and receivables turnover)",
		extra: "yearRange", extraDesc: "Number of fiscal years to report (default 1)"},
	{name: "get_growth_metrics", desc: "Year-over-year revenue, net income and EPS growth",
		extra: "yearRange", extraDesc: "Number of fiscal years to report (default 1)"},
	{name: "get_dividend_metrics", desc: "Dividend yield and payout ratio"},
	{name: "get_technical_overview", desc: "Moving averages, 52-week range and beta from the company overview"},
}

var marketDataToolSpecs = []remoteToolSpec{
	{name: "get_stock_price", desc: "Latest intraday price, previous close and change for a stock"},
	{name: "get_technical_indicators", desc: "RSI, MACD, SMA and EMA computed from intraday prices",
		extra: "period", extraDesc: "Indicator period in bars (default 14)"},
	{name: "get_trend_summary", desc: "Trend direction, momentum, support and resistance over recent bars",
		extra: "lookback", extraDesc: "Number of recent bars to analyze (default 50)"},
	{name: "get_market_sentiment", desc: "Composite market sentiment score from price action and volume",
		extra: "lookback", extraDesc: "Number of recent bars to analyze (default 30)"},
}

// FundamentalsTools wraps the ratio server's tools for agent use.
func FundamentalsTools(session *mcp.ClientSession) []tool.BaseTool {
	return remoteTools(session, fundamentalsToolSpecs)
}

// MarketDataTools wraps the market data server's tools for agent use.
func MarketDataTools(session *mcp.ClientSession) []tool.BaseTool {
	return remoteTools(session, marketDataToolSpecs)
}

func remoteTools(session *mcp.ClientSession, specs []remoteToolSpec) []tool.BaseTool {
	out := make([]tool.BaseTool, 0, len(specs))
	for _, spec := range specs {
		out = append(out, newRemoteTool(session, spec))
	}
	return out
}

func newRemoteTool(session *mcp.ClientSession, spec remoteToolSpec) tool.BaseTool {
	params := map[string]*schema.ParameterInfo{
		"symbol": {
			Type:     "string",
			Desc:     "Ticker symbol of the company",
			Required: true,
		},
	}
	if spec.extra != "" {
		params[spec.extra] = &schema.ParameterInfo{
			Type: "integer",
			Desc: spec.extraDesc,
		}
	}
	info := &schema.ToolInfo{
		Name:        spec.name,
		Desc:        spec.desc,
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}

	name := spec.name
	switch spec.extra {
	case "yearRange":
		return t_utils.NewTool(info, func(ctx context.Context, input symbolYearsArgs) (*toolReport, error) {
			return callRemote(ctx, session, name, input)
		})
	case "period":
		return t_utils.NewTool(info, func(ctx context.Context, input symbolPeriodArgs) (*toolReport, error) {
			return callRemote(ctx, session, name, input)
		})
	case "lookback":
		return t_utils.NewTool(info, func(ctx context.Context, input symbolLookbackArgs) (*toolReport, error) {
			return callRemote(ctx, session, name, input)
		})
	default:
		return t_utils.NewTool(info, func(ctx context.Context, input symbolArgs) (*toolReport, error) {
			return callRemote(ctx, session, name, input)
		})
	}
}
