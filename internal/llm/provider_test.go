package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ProviderConfig
		wantName string
		wantErr  error
	}{
		{name: "default is ollama", cfg: ProviderConfig{}, wantName: "ollama"},
		{name: "explicit ollama", cfg: ProviderConfig{Provider: "ollama"}, wantName: "ollama"},
		{name: "openai", cfg: ProviderConfig{Provider: "openai", APIKey: "sk-test"}, wantName: "openai"},
		{name: "openai with base url", cfg: ProviderConfig{Provider: "openai", BaseURL: "http://localhost:8080"}, wantName: "openai"},
		{name: "unknown", cfg: ProviderConfig{Provider: "bedrock"}, wantErr: ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestOpenAIGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"model": "gpt-4o-mini",
				"choices": []map[string]interface{}{
					{
						"message":       map[string]string{"role": "assistant", "content": "Educational Support"},
						"finish_reason": "stop",
					},
				},
				"usage": map[string]int{"prompt_tokens": 42, "completion_tokens": 3},
			})
		}))
		defer server.Close()

		provider := NewOpenAIProviderWithBaseURL("sk-test", server.URL)
		resp, err := provider.Generate(ctx, &Request{Model: "gpt-4o-mini", Prompt: "Categorize this"})

		require.NoError(t, err)
		assert.Equal(t, "Educational Support", resp.Content)
		assert.Equal(t, 42, resp.InputTokens)
		assert.Equal(t, 3, resp.OutputTokens)
	})

	t.Run("no choices returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"model":"gpt-4o-mini","choices":[]}`))
		}))
		defer server.Close()

		provider := NewOpenAIProviderWithBaseURL("sk-test", server.URL)
		resp, err := provider.Generate(ctx, &Request{Model: "gpt-4o-mini", Prompt: "Categorize this"})

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("transport failure returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		provider := NewOpenAIProviderWithBaseURL("sk-test", server.URL)
		resp, err := provider.Generate(ctx, &Request{Model: "gpt-4o-mini", Prompt: "Categorize this"})

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "openai api call")
	})
}
