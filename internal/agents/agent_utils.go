package agents

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/Nithiyasree11/basic-stock-analyzer/config"
)

// GeminiOpenAIBaseURL is Gemini's OpenAI-compatible endpoint.
const GeminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// NewChatModel creates the single chat model connection shared by all agents.
// Sampling is deterministic (temperature 0).
func NewChatModel(ctx context.Context, cfg *config.Config) (model.ToolCallingChatModel, error) {
	maxTokens := cfg.LLMMaxTokens
	var temperature float32

	switch cfg.LLMProvider {
	case config.ProviderGemini, config.ProviderOpenAI:
		apiKey, baseURL := cfg.OpenAIAPIKey, cfg.LLMBaseURL
		if cfg.LLMProvider == config.ProviderGemini {
			apiKey = cfg.GoogleAPIKey
			if baseURL == "" {
				baseURL = GeminiOpenAIBaseURL
			}
		}
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:     baseURL,
			APIKey:      apiKey,
			Model:       cfg.LLMModel,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
			Timeout:     cfg.RunTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s model: %w", cfg.LLMProvider, err)
		}
		return chatModel, nil
	case config.ProviderDeepSeek:
		chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:      cfg.DeepSeekAPIKey,
			BaseURL:     cfg.LLMBaseURL,
			Model:       cfg.LLMModel,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			Timeout:     cfg.RunTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create DeepSeek model: %w", err)
		}
		return chatModel, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLMProvider)
	}
}

// ToolCallChecker reports whether a streamed model output requests a tool call.
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
