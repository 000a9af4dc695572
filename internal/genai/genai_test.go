package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tripplanner/internal/domain"
	"tripplanner/internal/prompts"
)

var testPrompt = prompts.Prompt{Kind: prompts.KindTripPlan, Text: "plan a trip", MaxOutputTokens: 1024}

func TestGeminiGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-test:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "k" {
			t.Errorf("api key header missing")
		}
		var body geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Contents[0].Parts[0].Text != "plan a trip" || body.GenerationConfig.MaxOutputTokens != 1024 {
			t.Errorf("unexpected request body: %+v", body)
		}
		if body.GenerationConfig.Temperature != defaultTemperature {
			t.Errorf("temperature got %v", body.GenerationConfig.Temperature)
		}
		resp := map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{
					map[string]any{"text": "```json\n{\"a\":1}"},
					map[string]any{"text": "\n```"},
				}},
				"finishReason": "STOP",
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewGeminiClient(Config{APIKey: "k", Model: "gemini-test", BaseURL: srv.URL})
	got, err := c.Generate(context.Background(), testPrompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, `{"a":1}`) {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestGeminiErrorsAreTransportErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"api error", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`, "API key not valid"},
		{"plain status", http.StatusServiceUnavailable, ``, "503"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, "no candidates"},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, "SAFETY"},
		{"empty text", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  "}]},"finishReason":"MAX_TOKENS"}]}`, "MAX_TOKENS"},
		{"bad json", http.StatusOK, `not json`, "decode"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			c := NewGeminiClient(Config{APIKey: "k", BaseURL: srv.URL})
			_, err := c.Generate(context.Background(), testPrompt)
			if !domain.IsTransport(err) {
				t.Fatalf("expected transport error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("error %q should mention %q", err.Error(), tc.message)
			}
		})
	}
}

func TestGeminiHonoursContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewGeminiClient(Config{APIKey: "k", BaseURL: srv.URL})
	start := time.Now()
	_, err := c.Generate(ctx, testPrompt)
	if !domain.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("generate did not stop at the context deadline")
	}
}

func TestOpenAIGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("authorization header missing")
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["model"] != "gpt-test" {
			t.Errorf("model got %v", body["model"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-test",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"[{\"name\":\"Goa\"}]"}}]}`)
	}))
	defer srv.Close()

	c := NewOpenAIClient(Config{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL + "/"})
	got, err := c.Generate(context.Background(), testPrompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `[{"name":"Goa"}]` {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestOpenAIErrorIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	c := NewOpenAIClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	_, err := c.Generate(context.Background(), testPrompt)
	if !domain.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestNewSelectsProvider(t *testing.T) {
	g, err := New(Config{Provider: "OpenAI", APIKey: "k"})
	if err != nil || g.Provider() != ProviderOpenAI {
		t.Fatalf("expected openai client, got %v %v", g, err)
	}
	g, err = New(Config{APIKey: "k"})
	if err != nil || g.Provider() != ProviderGemini {
		t.Fatalf("expected gemini default, got %v %v", g, err)
	}
	if _, err := New(Config{Provider: "gemini"}); err == nil {
		t.Fatalf("expected error without api key")
	}
	if _, err := New(Config{Provider: "llama", APIKey: "k"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
