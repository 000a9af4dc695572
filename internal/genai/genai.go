// Package genai holds the generative text clients. A client sends one prompt
// and returns the raw model text; it never interprets that text.
package genai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"tripplanner/internal/prompts"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultTemperature = 0.7
)

type Generator interface {
	Generate(ctx context.Context, p prompts.Prompt) (string, error)
	Provider() string
}

// Config selects and configures a backend.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	HTTPClient  *http.Client
}

func New(cfg Config) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("genai: api key is not configured for provider %q", cfg.Provider)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		return NewGeminiClient(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("genai: unknown provider %q", cfg.Provider)
	}
}

func temperature(v float64) float64 {
	if v <= 0 {
		return defaultTemperature
	}
	return v
}
