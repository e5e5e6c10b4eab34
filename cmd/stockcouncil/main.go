package main

import (
	"fmt"
	"os"

	"github.com/stockcouncil/StockCouncilGo/internal/cli"
)

func main() {
	rootCmd, err := cli.NewRootCmd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
