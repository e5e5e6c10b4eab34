package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stockcouncil/StockCouncilGo/internal/findata"
	"github.com/stockcouncil/StockCouncilGo/internal/fundamentals"
	"github.com/stockcouncil/StockCouncilGo/internal/marketdata"
)

func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- ServeTransport(ctx, server, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve returned error: %v", err)
			}
		case <-time.After(time.Second):
			t.Error("server did not stop")
		}
	})

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func decodeStructured[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	raw, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	return out
}

func TestFundamentalsServerListsAllTools(t *testing.T) {
	server, err := NewFundamentalsServer(fundamentals.NewService(findata.NewLoader("testdata")))
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	session := connect(t, server)

	tools, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}

	want := map[string]bool{
		"get_valuation_ratios":     false,
		"get_profitability_ratios": false,
		"get_liquidity_ratios":     false,
		"get_leverage_ratios":      false,
		"get_efficiency_ratios":    false,
		"get_growth_metrics":       false,
		"get_dividend_metrics":     false,
		"get_technical_overview":   false,
	}
	for _, tool := range tools.Tools {
		if _, ok := want[tool.Name]; !ok {
			t.Fatalf("unexpected tool %q", tool.Name)
		}
		want[tool.Name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("tool %q not registered", name)
		}
	}
}

func TestFundamentalsToolRoundTrip(t *testing.T) {
	server, err := NewFundamentalsServer(fundamentals.NewService(findata.NewLoader("testdata")))
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	session := connect(t, server)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_profitability_ratios",
		Arguments: map[string]any{"symbol": "IBM", "yearRange": 1},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool call failed: %v", result.Content)
	}

	res := decodeStructured[fundamentals.ProfitabilityResult](t, result)
	if res.Company != "IBM" {
		t.Fatalf("expected company IBM, got %q", res.Company)
	}
	if res.GrossMargin != "50%" {
		t.Fatalf("expected gross margin 50%%, got %q", res.GrossMargin)
	}
}

func TestFundamentalsToolDegradesOnMissingData(t *testing.T) {
	server, err := NewFundamentalsServer(fundamentals.NewService(findata.NewLoader(t.TempDir())))
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	session := connect(t, server)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_valuation_ratios",
		Arguments: map[string]any{"symbol": "IBM"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatal("missing data should degrade inside the result, not fail the call")
	}

	res := decodeStructured[fundamentals.ValuationResult](t, result)
	if res.Error == "" {
		t.Fatal("expected error field in result")
	}
	if res.Company != "IBM" {
		t.Fatalf("expected company IBM in error result, got %q", res.Company)
	}
}

func TestMarketDataServerRoundTrip(t *testing.T) {
	svc := marketdata.NewService(findata.NewLoader("testdata"), nil)
	server, err := NewMarketDataServer(svc)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	session := connect(t, server)

	tools, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(tools.Tools) != 4 {
		t.Fatalf("expected 4 tools, got %d", len(tools.Tools))
	}

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_stock_price",
		Arguments: map[string]any{"symbol": "IBM"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool call failed: %v", result.Content)
	}

	res := decodeStructured[marketdata.PriceResult](t, result)
	if res.LatestPrice != 152.9 {
		t.Fatalf("expected latest price 152.9, got %v", res.LatestPrice)
	}
	if res.PreviousClose != 152.8 {
		t.Fatalf("expected previous close 152.8, got %v", res.PreviousClose)
	}

	sentiment, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_market_sentiment",
		Arguments: map[string]any{"symbol": "IBM", "lookback": 30},
	})
	if err != nil {
		t.Fatalf("call sentiment tool: %v", err)
	}
	sres := decodeStructured[marketdata.SentimentResult](t, sentiment)
	if sres.Sentiment.SentimentScore != 40 {
		t.Fatalf("expected sentiment score 40, got %d", sres.Sentiment.SentimentScore)
	}
}
