package council

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/stockcouncil/StockCouncilGo/internal/config"
)

// NewChatModel builds the tool-calling chat model shared by every
// participant, selected by cfg.LLMProvider.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.ToolCallingChatModel, error) {
	switch cfg.LLMProvider {
	case config.ProviderDeepSeek:
		baseURL := cfg.BackendURL
		if baseURL == "" {
			baseURL = "https://api.deepseek.com/v1"
		}
		chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			BaseURL:   baseURL,
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     cfg.ChatModel,
			MaxTokens: cfg.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("create deepseek model: %w", err)
		}
		return chatModel, nil
	case config.ProviderOpenAI:
		maxTokens := cfg.MaxTokens
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   cfg.BackendURL,
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.ChatModel,
			MaxTokens: &maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}
		return chatModel, nil
	default:
		return nil, fmt.Errorf("unsupported llm_provider %q", cfg.LLMProvider)
	}
}

// ToolCallChecker reports whether a streamed response carries tool calls.
func ToolCallChecker(ctx context.Context, sr *schema.StreamReader[*schema.Message]) (bool, error) {
	defer sr.Close()
	for {
		msg, err := sr.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		if len(msg.ToolCalls) > 0 {
			return true, nil
		}
	}
}
