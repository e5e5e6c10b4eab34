// The marketdata-mcp server exposes intraday price and indicator tools over
// MCP streamable HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/stockcouncil/StockCouncilGo/internal/config"
	"github.com/stockcouncil/StockCouncilGo/internal/findata"
	"github.com/stockcouncil/StockCouncilGo/internal/marketdata"
	"github.com/stockcouncil/StockCouncilGo/internal/mcpserver"
)

func main() {
	cfg := config.DefaultConfig()

	addr := flag.String("addr", cfg.MarketDataAddr, "listen address")
	dataDir := flag.String("data", cfg.DataDir, "directory with the static financial datasets")
	online := flag.Bool("online", cfg.OnlineData, "enable the live quote cross-check")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := marketdata.NewService(findata.NewLoader(*dataDir), findata.NewQuoteService(*online))
	server, err := mcpserver.NewMarketDataServer(svc)
	if err != nil {
		log.Fatalf("[MCP] build market data server: %v", err)
	}

	if err := mcpserver.ServeHTTP(ctx, server, *addr); err != nil {
		log.Fatalf("[MCP] market data server: %v", err)
	}
}
