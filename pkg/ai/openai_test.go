package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salescoach-dev/sales-coach/pkg/config"
)

func TestComplete_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		// System prompt must be prepended before the conversation
		if len(payload.Messages) != 3 {
			t.Fatalf("expected 3 messages got %d", len(payload.Messages))
		}
		if payload.Messages[0].Role != "system" {
			t.Fatalf("expected leading system message got %s", payload.Messages[0].Role)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "今日の訪問目的を教えてください。"}},
			},
		})
	}))
	defer ts.Close()

	client := NewOpenAIClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: ts.URL})

	reply, err := client.Complete(context.Background(), "you are a sales coach", []ChatMessage{
		{Role: "assistant", Content: "どんな会社と商談しましたか？"},
		{Role: "user", Content: "ABC商事です。感触は良かったです。"},
	})
	require.NoError(t, err)
	require.Equal(t, "今日の訪問目的を教えてください。", reply)
}

func TestComplete_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewOpenAIClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: ts.URL})

	_, err := client.Complete(context.Background(), "prompt", []ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
}

func TestComplete_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer ts.Close()

	client := NewOpenAIClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: ts.URL})

	_, err := client.Complete(context.Background(), "prompt", []ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
}
