// Package cli implements the stockcouncil command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockcouncil/StockCouncilGo/internal/config"
	"github.com/stockcouncil/StockCouncilGo/internal/council"
	"github.com/stockcouncil/StockCouncilGo/internal/display"
	"github.com/stockcouncil/StockCouncilGo/internal/news"
	"github.com/stockcouncil/StockCouncilGo/internal/storage"
)

const version = "0.1.0"

// NewRootCmd creates the root command. Configuration is owned by a
// config.Manager: defaults, then config.json, then environment overrides.
func NewRootCmd() (*cobra.Command, error) {
	manager, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	rootCmd := &cobra.Command{
		Use:   "stockcouncil",
		Short: "StockCouncil - a panel of LLM analysts for stock opinions",
		Long: `StockCouncil convenes a fixed panel of LLM analysts over MCP tool servers
and static financial datasets, and distills their discussion into a
narrated Buy/Hold/Avoid opinion.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := manager.Effective()
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("create directories: %w", err)
			}
			// External edits to config.json apply to subsequent runs.
			return manager.Watch(cmd.Context(), func(config.Config) {
				log.Printf("[Config] reloaded %s", manager.Path())
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(manager)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(manager))
	rootCmd.AddCommand(newHistoryCmd(manager))
	rootCmd.AddCommand(newConfigCmd(manager))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd, nil
}

func newAnalyzeCmd(manager *config.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Run a council discussion for a stock symbol",
		Long: `Convene the council on a given ticker symbol and print the discussion
and verdict. Example: stockcouncil analyze IBM --rounds=2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("query")
			rounds, _ := cmd.Flags().GetInt("rounds")
			offline, _ := cmd.Flags().GetBool("offline")

			runCfg := manager.Effective()
			if rounds > 0 {
				runCfg.MaxRounds = rounds
			}
			if offline {
				runCfg.OnlineNews = false
			}
			return runAnalyzeCommand(cmd.Context(), &runCfg, args[0], query)
		},
	}

	cmd.Flags().String("query", "", "Question to put to the council (default asks for a buy/hold/avoid view)")
	cmd.Flags().Int("rounds", 0, "Number of discussion rounds (default from config)")
	cmd.Flags().Bool("offline", false, "Skip online news fetching")

	return cmd
}

func newHistoryCmd(manager *config.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [SYMBOL]",
		Short: "List past council runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := ""
			if len(args) == 1 {
				symbol = strings.TrimSpace(strings.ToUpper(args[0]))
			}
			limit, _ := cmd.Flags().GetInt("limit")

			cfg := manager.Effective()
			store, err := storage.NewStore(historyDBPath(&cfg))
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(symbol, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No council runs recorded yet.")
				return nil
			}

			fmt.Printf("%-6s %-8s %-7s %-6s %-20s %s\n", "ID", "SYMBOL", "ACTION", "TURNS", "WHEN", "QUERY")
			for _, run := range runs {
				fmt.Printf("%-6d %-8s %-7s %-6d %-20s %s\n",
					run.ID, run.Symbol, run.Action, run.Turns,
					run.CreatedAt.Format("2006-01-02 15:04:05"), run.Query)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stockcouncil v%s\n", version)
		},
	}
}

func newConfigCmd(manager *config.Manager) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := manager.Effective()
			showConfig(&cfg, manager.Path())
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := manager.Effective()
			return validateConfig(&cfg)
		},
	})

	return configCmd
}

func runAnalyzeCommand(ctx context.Context, cfg *config.Config, symbol, query string) error {
	symbol = strings.TrimSpace(strings.ToUpper(symbol))
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	panel, err := council.New(ctx, cfg, news.NewProvider(cfg.OnlineNews))
	if err != nil {
		return fmt.Errorf("convene council: %w", err)
	}
	defer panel.Close()

	result, err := panel.Run(ctx, symbol, query)
	if err != nil {
		return err
	}

	fmt.Print(display.RenderResult(result))

	if err := saveResult(cfg, result); err != nil {
		fmt.Printf("Warning: could not save result: %v\n", err)
	}
	if err := recordRun(cfg, result); err != nil {
		fmt.Printf("Warning: could not record run history: %v\n", err)
	}
	return nil
}

// recordRun appends the run to the history database.
func recordRun(cfg *config.Config, result *council.Result) error {
	store, err := storage.NewStore(historyDBPath(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveRun(result)
	return err
}

func historyDBPath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "council.db")
}

// saveResult writes the run as JSON under the results directory.
func saveResult(cfg *config.Config, result *council.Result) error {
	dir := filepath.Join(cfg.ResultsDir, result.Symbol)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	name := fmt.Sprintf("council_%s.json", time.Now().Format("2006-01-02_150405"))
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}

func showConfig(cfg *config.Config, configPath string) {
	fmt.Println("Current StockCouncil configuration:")
	fmt.Println("===================================")
	fmt.Printf("Config File:         %s\n", configPath)
	fmt.Printf("Project Directory:   %s\n", cfg.ProjectDir)
	fmt.Printf("Results Directory:   %s\n", cfg.ResultsDir)
	fmt.Printf("Data Directory:      %s\n", cfg.DataDir)
	fmt.Println()
	fmt.Printf("LLM Provider:        %s\n", cfg.LLMProvider)
	fmt.Printf("Chat Model:          %s\n", cfg.ChatModel)
	fmt.Printf("Backend URL:         %s\n", cfg.BackendURL)
	fmt.Printf("Max Tokens:          %d\n", cfg.MaxTokens)
	fmt.Printf("Max Rounds:          %d\n", cfg.MaxRounds)
	fmt.Println()
	fmt.Printf("Fundamentals Server: %s\n", cfg.FundamentalsURL())
	fmt.Printf("Market Data Server:  %s\n", cfg.MarketDataURL())
	fmt.Println()
	fmt.Printf("Online News:         %t\n", cfg.OnlineNews)
	fmt.Printf("Online Data:         %t\n", cfg.OnlineData)
	fmt.Printf("Debug Mode:          %t\n", cfg.Debug)
	fmt.Println()

	fmt.Println("API keys:")
	fmt.Println("---------")
	if cfg.DeepSeekAPIKey != "" {
		fmt.Println("DeepSeek API:        configured")
	} else {
		fmt.Println("DeepSeek API:        not configured")
	}
	if cfg.OpenAIAPIKey != "" {
		fmt.Println("OpenAI API:          configured")
	} else {
		fmt.Println("OpenAI API:          not configured")
	}
}

func validateConfig(cfg *config.Config) error {
	fmt.Println("Validating StockCouncil configuration...")

	fmt.Print("Checking directories... ")
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Println("failed")
		return fmt.Errorf("directory validation failed: %w", err)
	}
	fmt.Println("ok")

	fmt.Print("Checking configuration values... ")
	if err := cfg.Validate(); err != nil {
		fmt.Println("failed")
		return err
	}
	fmt.Println("ok")

	fmt.Print("Checking API keys... ")
	var warnings []string
	switch cfg.LLMProvider {
	case config.ProviderDeepSeek:
		if cfg.DeepSeekAPIKey == "" {
			warnings = append(warnings, "DEEPSEEK_API_KEY not set")
		}
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			warnings = append(warnings, "OPENAI_API_KEY not set")
		}
	}
	if len(warnings) > 0 {
		fmt.Println("warnings")
		for _, warning := range warnings {
			fmt.Printf("  - %s\n", warning)
		}
	} else {
		fmt.Println("ok")
	}

	fmt.Println()
	if len(warnings) == 0 {
		fmt.Println("Configuration validation completed successfully.")
	} else {
		fmt.Printf("Configuration validation completed with %d warning(s).\n", len(warnings))
		fmt.Println("The council cannot run without an API key for the selected provider.")
	}
	fmt.Println()
	fmt.Println("Start the tool servers with 'council-servers' before running an analysis.")

	return nil
}

func runInteractiveMode(manager *config.Manager) error {
	fmt.Println("Welcome to StockCouncil")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println()

	for {
		// Re-read per iteration so config.json edits apply between runs.
		cfg := manager.Effective()

		symbol, err := PromptForTicker()
		if err != nil {
			return err
		}
		query, err := PromptForQuery(symbol)
		if err != nil {
			return err
		}
		rounds, err := PromptForRounds(cfg.MaxRounds)
		if err != nil {
			return err
		}

		cfg.MaxRounds = rounds
		if err := runAnalyzeCommand(context.Background(), &cfg, symbol, query); err != nil {
			fmt.Printf("Analysis failed: %v\n", err)
		}

		again, err := PromptForAnotherRun()
		if err != nil || !again {
			return err
		}
		fmt.Println()
	}
}
