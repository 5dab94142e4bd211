package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/atendia/respondex/internal/domain"
)

// chatResponse mirrors the OpenAI-compatible chat completion response.
type chatResponse struct {
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func newChatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		resp := chatResponse{Object: "chat.completion", Model: "test-model"}
		resp.Choices = append(resp.Choices, struct {
			Index   int `json:"index"`
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		}{
			Message: struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			}{Role: "assistant", Content: content},
			FinishReason: "stop",
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestGenerator(baseURL string) *Generator {
	return NewGenerator(&GeneratorConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "test-model",
		Temperature: 0.2,
		MaxTokens:   2048,
		Provider:    "test",
		Logger:      zap.NewNop(),
	})
}

func TestGenerator_Generate(t *testing.T) {
	server := newChatServer(t, "  ## Resposta\n\nInstale o FortiClient.  ")
	defer server.Close()

	got, err := newTestGenerator(server.URL).Generate(context.Background(), "como configurar vpn?")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "## Resposta\n\nInstale o FortiClient." {
		t.Errorf("unexpected answer: %q", got)
	}
}

func TestGenerator_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse{Object: "chat.completion", Model: "test-model"})
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "pergunta")
	if !errors.Is(err, domain.ErrGenerationProviderError) {
		t.Fatalf("expected ErrGenerationProviderError, got %v", err)
	}
}

func TestGenerator_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "rate limit exceeded",
				"type":    "rate_limit_error",
			},
		})
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "pergunta")
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestGenerator_Model(t *testing.T) {
	if got := newTestGenerator("http://unused").Model(); got != "test-model" {
		t.Errorf("Model() = %q", got)
	}
}
