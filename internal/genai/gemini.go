package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tripplanner/internal/domain"
	"tripplanner/internal/prompts"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel = "gemini-1.5-pro"
)

type GeminiClient struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	HTTPClient  *http.Client
}

func NewGeminiClient(cfg Config) *GeminiClient {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultGeminiModel
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = geminiBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &GeminiClient{
		APIKey:      cfg.APIKey,
		Model:       model,
		BaseURL:     base,
		Temperature: temperature(cfg.Temperature),
		HTTPClient:  client,
	}
}

func (c *GeminiClient) Provider() string { return ProviderGemini }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// Generate calls models/<model>:generateContent. The caller's context bounds
// the call; there is no retry.
func (c *GeminiClient) Generate(ctx context.Context, p prompts.Prompt) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: p.Text}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     c.Temperature,
			MaxOutputTokens: p.MaxOutputTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", c.fail(err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, url.PathEscape(c.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", c.fail(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", c.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", c.fail(parseGeminiError(resp))
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", c.fail(fmt.Errorf("decode response: %w", err))
	}

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", c.fail(fmt.Errorf("prompt blocked: %s", out.PromptFeedback.BlockReason))
	}
	if len(out.Candidates) == 0 {
		return "", c.fail(errors.New("response has no candidates"))
	}

	var b strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		reason := out.Candidates[0].FinishReason
		if reason == "" {
			reason = "unknown"
		}
		return "", c.fail(fmt.Errorf("empty candidate (finish reason %s)", reason))
	}
	return text, nil
}

func (c *GeminiClient) fail(err error) error {
	return domain.TransportError{Provider: ProviderGemini, Err: err}
}

func parseGeminiError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return fmt.Errorf("gemini api error: %s", resp.Status)
	}

	var payload struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Error.Message == "" {
		return fmt.Errorf("gemini api error: %s", resp.Status)
	}
	if payload.Error.Status != "" {
		return fmt.Errorf("gemini api error (%s): %s", payload.Error.Status, payload.Error.Message)
	}
	return errors.New(payload.Error.Message)
}
