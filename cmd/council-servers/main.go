// council-servers launches both MCP tool servers and supervises them until
// interrupted or until either server exits.
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/stockcouncil/StockCouncilGo/internal/config"
)

type processExit struct {
	name string
	err  error
}

func main() {
	cfg := config.DefaultConfig()

	fundamentalsAddr := flag.String("fundamentals-addr", cfg.FundamentalsAddr, "fundamentals server listen address")
	marketDataAddr := flag.String("marketdata-addr", cfg.MarketDataAddr, "market data server listen address")
	dataDir := flag.String("data", cfg.DataDir, "directory with the static financial datasets")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exitCh := make(chan processExit, 2)

	fundamentals := startServer(ctx, exitCh, "Fundamentals", "fundamentals-mcp",
		"-addr", *fundamentalsAddr, "-data", *dataDir)
	marketData := startServer(ctx, exitCh, "MarketData", "marketdata-mcp",
		"-addr", *marketDataAddr, "-data", *dataDir)

	log.Printf("[Launcher] fundamentals on %s, market data on %s", *fundamentalsAddr, *marketDataAddr)

	select {
	case <-ctx.Done():
		log.Printf("[Launcher] shutting down")
	case exit := <-exitCh:
		if exit.err != nil {
			log.Printf("[Launcher] %s exited: %v", exit.name, exit.err)
		} else {
			log.Printf("[Launcher] %s exited", exit.name)
		}
	}

	terminate(fundamentals)
	terminate(marketData)

	// Give the children a moment to exit cleanly.
	deadline := time.After(5 * time.Second)
	for remaining := runningCount(fundamentals, marketData); remaining > 0; remaining-- {
		select {
		case <-exitCh:
		case <-deadline:
			killAll(fundamentals, marketData)
			return
		}
	}
}

func startServer(ctx context.Context, exitCh chan<- processExit, label, binary string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, resolveBinary(binary), args...)
	cmd.Stdin = os.Stdin

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Fatalf("[Launcher] pipe %s stdout: %v", label, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		log.Fatalf("[Launcher] pipe %s stderr: %v", label, err)
	}
	go prefixLines(label, stdout)
	go prefixLines(label, stderr)

	if err := cmd.Start(); err != nil {
		log.Fatalf("[Launcher] start %s: %v", label, err)
	}
	log.Printf("[Launcher] started %s (pid %d)", label, cmd.Process.Pid)

	go func() {
		exitCh <- processExit{name: label, err: cmd.Wait()}
	}()
	return cmd
}

// resolveBinary prefers a sibling of this executable, then falls back to PATH.
func resolveBinary(name string) string {
	if self, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), name)
		if _, err := os.Stat(sibling); err == nil {
			return sibling
		}
	}
	return name
}

func prefixLines(label string, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		log.Printf("[%s] %s", label, scanner.Text())
	}
}

func terminate(cmd *exec.Cmd) {
	if cmd.Process != nil && cmd.ProcessState == nil {
		_ = cmd.Process.Signal(syscall.SIGTERM)
	}
}

func runningCount(cmds ...*exec.Cmd) int {
	count := 0
	for _, cmd := range cmds {
		if cmd.Process != nil && cmd.ProcessState == nil {
			count++
		}
	}
	return count
}

func killAll(cmds ...*exec.Cmd) {
	for _, cmd := range cmds {
		if cmd.Process != nil && cmd.ProcessState == nil {
			_ = cmd.Process.Kill()
		}
	}
}
