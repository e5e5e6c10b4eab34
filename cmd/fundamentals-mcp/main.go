// The fundamentals-mcp server exposes financial ratio tools over MCP
// streamable HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/stockcouncil/StockCouncilGo/internal/config"
	"github.com/stockcouncil/StockCouncilGo/internal/findata"
	"github.com/stockcouncil/StockCouncilGo/internal/fundamentals"
	"github.com/stockcouncil/StockCouncilGo/internal/mcpserver"
)

func main() {
	cfg := config.DefaultConfig()

	addr := flag.String("addr", cfg.FundamentalsAddr, "listen address")
	dataDir := flag.String("data", cfg.DataDir, "directory with the static financial datasets")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := fundamentals.NewService(findata.NewLoader(*dataDir))
	server, err := mcpserver.NewFundamentalsServer(svc)
	if err != nil {
		log.Fatalf("[MCP] build fundamentals server: %v", err)
	}

	if err := mcpserver.ServeHTTP(ctx, server, *addr); err != nil {
		log.Fatalf("[MCP] fundamentals server: %v", err)
	}
}
