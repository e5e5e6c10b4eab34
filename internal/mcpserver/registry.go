// Package mcpserver exposes the ratio and market analysis services as MCP
// tools. Registration is an explicit compile-time table: every tool a
// server offers is listed in its registrations slice, and the typed
// registrar table below is the only place handler types are enumerated.
package mcpserver

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stockcouncil/StockCouncilGo/internal/fundamentals"
	"github.com/stockcouncil/StockCouncilGo/internal/marketdata"
)

const serverVersion = "0.1.0"

// SymbolInput is the common single-argument tool input.
type SymbolInput struct {
	Symbol string `json:"symbol" jsonschema:"company ticker symbol, e.g. IBM"`
}

// YearRangeInput adds the optional number of fiscal years to analyze.
type YearRangeInput struct {
	Symbol    string `json:"symbol" jsonschema:"company ticker symbol, e.g. IBM"`
	YearRange int    `json:"yearRange,omitempty" jsonschema:"number of fiscal years to analyze, default 1"`
}

// PeriodInput adds the indicator period.
type PeriodInput struct {
	Symbol string `json:"symbol" jsonschema:"company ticker symbol, e.g. IBM"`
	Period int    `json:"period,omitempty" jsonschema:"indicator period in bars, default 14"`
}

// LookbackInput adds the analysis window.
type LookbackInput struct {
	Symbol   string `json:"symbol" jsonschema:"company ticker symbol, e.g. IBM"`
	Lookback int    `json:"lookback,omitempty" jsonschema:"number of bars to analyze"`
}

// registration binds one tool definition to its handler. The handler must
// match one of the registrar rows below or registration fails at startup.
type registration struct {
	tool    *mcp.Tool
	handler any
}

type toolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newToolRegistrar[In, Out any]() toolRegistrar {
	return toolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[In, Out])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[In, Out]))
		},
	}
}

var toolRegistrars = []toolRegistrar{
	newToolRegistrar[SymbolInput, fundamentals.ValuationResult](),
	newToolRegistrar[YearRangeInput, fundamentals.ProfitabilityResult](),
	newToolRegistrar[YearRangeInput, fundamentals.LiquidityResult](),
	newToolRegistrar[YearRangeInput, fundamentals.LeverageResult](),
	newToolRegistrar[YearRangeInput, fundamentals.EfficiencyResult](),
	newToolRegistrar[YearRangeInput, fundamentals.GrowthResult](),
	newToolRegistrar[SymbolInput, fundamentals.DividendResult](),
	newToolRegistrar[SymbolInput, fundamentals.TechnicalOverviewResult](),
	newToolRegistrar[SymbolInput, marketdata.PriceResult](),
	newToolRegistrar[PeriodInput, marketdata.IndicatorsResult](),
	newToolRegistrar[LookbackInput, marketdata.TrendResult](),
	newToolRegistrar[LookbackInput, marketdata.SentimentResult](),
}

func addTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range toolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	return fmt.Errorf("no registrar for handler type %T on tool %q", handler, tool.Name)
}

func buildServer(name string, registrations []registration) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: serverVersion}, nil)
	for _, reg := range registrations {
		if err := addTool(server, reg.tool, reg.handler); err != nil {
			return nil, err
		}
	}
	return server, nil
}
