package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
)

type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development" json:"env"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" json:"log_level"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080" json:"http_addr"`

	LLMProvider  string `envconfig:"LLM_PROVIDER" default:"gemini" json:"llm_provider"`
	LLMModel     string `envconfig:"LLM_MODEL" default:"gemini-2.5-flash" json:"llm_model"`
	LLMBaseURL   string `envconfig:"LLM_BASE_URL" json:"llm_base_url"`
	LLMMaxTokens int    `envconfig:"LLM_MAX_TOKENS" default:"8192" json:"llm_max_tokens"`
	LLMMaxStep   int    `envconfig:"LLM_MAX_STEP" default:"12" json:"llm_max_step"`

	// AI Model API Keys
	GoogleAPIKey   string `envconfig:"GOOGLE_API_KEY" json:"google_api_key"`
	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY" json:"openai_api_key"`
	DeepSeekAPIKey string `envconfig:"DEEPSEEK_API_KEY" json:"deepseek_api_key"`

	// Market/news data
	FMPAPIKey   string `envconfig:"FMP_API" json:"fmp_api_key"`
	FMPBaseURL  string `envconfig:"FMP_BASE_URL" default:"https://financialmodelingprep.com" json:"fmp_base_url"`
	NewsAPIKey  string `envconfig:"NEWS_API" json:"news_api_key"`
	NewsBaseURL string `envconfig:"NEWS_BASE_URL" default:"https://api.stockdata.org" json:"news_base_url"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" json:"http_timeout"`
	RunTimeout  time.Duration `envconfig:"RUN_TIMEOUT" default:"5m" json:"run_timeout"`

	// Eino Debug configuration
	EinoDebugEnabled bool `envconfig:"EINO_DEBUG_ENABLED" default:"false" json:"eino_debug_enabled"`
}

// Load reads an optional .env file and then the process environment.
// API keys are not checked here; a missing key shows up as a provider error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI, ProviderDeepSeek:
	default:
		return fmt.Errorf("unsupported llm provider %q", c.LLMProvider)
	}
	if strings.TrimSpace(c.LLMModel) == "" {
		return fmt.Errorf("llm model is required")
	}
	if c.LLMMaxStep <= 0 {
		return fmt.Errorf("llm max step must be positive, got %d", c.LLMMaxStep)
	}
	if c.HTTPTimeout <= 0 || c.RunTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

// Redacted returns a copy with secrets masked, for display.
func (c Config) Redacted() Config {
	c.GoogleAPIKey = mask(c.GoogleAPIKey)
	c.OpenAIAPIKey = mask(c.OpenAIAPIKey)
	c.DeepSeekAPIKey = mask(c.DeepSeekAPIKey)
	c.FMPAPIKey = mask(c.FMPAPIKey)
	c.NewsAPIKey = mask(c.NewsAPIKey)
	return c
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
