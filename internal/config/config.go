package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Providers accepted for LLMProvider.
const (
	ProviderDeepSeek = "deepseek"
	ProviderOpenAI   = "openai"
)

type Config struct {
	ProjectDir string `json:"project_dir"`
	ResultsDir string `json:"results_dir"`
	DataDir    string `json:"data_dir"`

	LLMProvider string `json:"llm_provider"`
	ChatModel   string `json:"chat_model"`
	BackendURL  string `json:"backend_url"`
	MaxTokens   int    `json:"max_tokens"`

	// MaxRounds caps the council: every participant speaks exactly once
	// per round.
	MaxRounds int `json:"max_rounds"`

	FundamentalsAddr string `json:"fundamentals_addr"`
	MarketDataAddr   string `json:"marketdata_addr"`

	OnlineNews bool `json:"online_news"`
	OnlineData bool `json:"online_data"`
	Debug      bool `json:"debug"`

	// AI Model API Keys
	DeepSeekAPIKey string `json:"deepseek_api_key"`
	OpenAIAPIKey   string `json:"openai_api_key"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()
	cfg := DefaultConfigWithRoot(currentDir)

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()
	return cfg
}

// Load builds the layered configuration source: defaults seeded from the
// working directory, the persisted config.json over the defaults, and
// environment variables over both (via Manager.Effective). The returned
// Manager owns the file and can Watch it for external edits.
func Load(opts ...ManagerOption) (*Manager, error) {
	_ = godotenv.Load()

	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	managerOpts := append([]ManagerOption{WithInitialConfig(DefaultConfigWithRoot(root))}, opts...)
	return NewManager(managerOpts...)
}

func DefaultConfigWithRoot(root string) *Config {
	return &Config{
		ProjectDir: root,
		ResultsDir: filepath.Join(root, "results"),
		DataDir:    filepath.Join(root, "data"),

		LLMProvider: ProviderDeepSeek,
		ChatModel:   "deepseek-chat",
		BackendURL:  "",
		MaxTokens:   8192,

		MaxRounds: 1,

		FundamentalsAddr: "localhost:8000",
		MarketDataAddr:   "localhost:8001",

		OnlineNews: false,
		OnlineData: false,
		Debug:      false,
	}
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("RESULTS_DIR"); val != "" {
		c.ResultsDir = val
	}
	if val := os.Getenv("DATA_DIR"); val != "" {
		c.DataDir = val
	}

	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("CHAT_MODEL"); val != "" {
		c.ChatModel = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}
	if val := os.Getenv("MAX_TOKENS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxTokens = v
		}
	}

	if val := os.Getenv("MAX_ROUNDS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.MaxRounds = v
		}
	}

	if val := os.Getenv("FUNDAMENTALS_ADDR"); val != "" {
		c.FundamentalsAddr = val
	}
	if val := os.Getenv("MARKETDATA_ADDR"); val != "" {
		c.MarketDataAddr = val
	}

	if val := os.Getenv("ONLINE_NEWS"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.OnlineNews = enabled
		}
	}
	if val := os.Getenv("ONLINE_DATA"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.OnlineData = enabled
		}
	}
	if val := os.Getenv("STOCKCOUNCIL_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}

	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderDeepSeek, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm_provider %q", c.LLMProvider)
	}
	if c.MaxRounds < 1 {
		return fmt.Errorf("max_rounds must be at least 1, got %d", c.MaxRounds)
	}
	if strings.TrimSpace(c.FundamentalsAddr) == "" {
		return fmt.Errorf("fundamentals_addr must not be empty")
	}
	if strings.TrimSpace(c.MarketDataAddr) == "" {
		return fmt.Errorf("marketdata_addr must not be empty")
	}
	return nil
}

// FundamentalsURL is the streamable HTTP endpoint of the ratio server.
func (c *Config) FundamentalsURL() string {
	return "http://" + c.FundamentalsAddr + "/mcp"
}

// MarketDataURL is the streamable HTTP endpoint of the market data server.
func (c *Config) MarketDataURL() string {
	return "http://" + c.MarketDataAddr + "/mcp"
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ProjectDir, c.ResultsDir, c.DataDir}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}
