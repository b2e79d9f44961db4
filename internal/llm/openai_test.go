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

func completion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1735689600,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

// chatServer answers every request with h and returns its /v1 base URL.
func chatServer(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL + "/v1"
}

func TestOpenAIGenerate(t *testing.T) {
	var got map[string]any
	base := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completion(`{"reply":"Do two mock interviews."}`, "stop"))
	})
	p, err := newOpenAI(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: base})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are the KarmaLoop Oracle.",
		Messages:  []Message{{Role: RoleUser, Content: "Interview tips?"}},
		Schema:    replySchema,
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reply":"Do two mock interviews."}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)

	msgs, _ := got["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	format, _ := got["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIRejectsOffSchemaAnswer(t *testing.T) {
	base := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completion(`{"advice":"wrong field"}`, "stop"))
	})
	p, err := newOpenAI(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: base})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Schema: replySchema})
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestOpenAITruncatedAndEmpty(t *testing.T) {
	replies := []map[string]any{
		completion(`{"reply":"cut`, "length"),
		{"id": "x", "object": "chat.completion", "model": "gpt-4o", "choices": []any{}},
	}
	n := 0
	base := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(replies[n])
		n++
	})
	p, err := newOpenAI(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: base})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Schema: replySchema})
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)

	_, err = p.Generate(context.Background(), Request{})
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestOpenAIErrors(t *testing.T) {
	for status, want := range map[int]string{
		http.StatusTooManyRequests:     "rate limited",
		http.StatusBadGateway:          "unavailable",
		http.StatusInternalServerError: "unavailable",
	} {
		base := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "nope", "type": "server_error"},
			})
		})
		p, err := newOpenAI(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: base})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), Request{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), want, "status %d", status)
	}
}

func TestOpenRouterSendsAttribution(t *testing.T) {
	base := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KarmaLoop", r.Header.Get("X-Title"))
		assert.NotEmpty(t, r.Header.Get("HTTP-Referer"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completion("plain text works too", "stop"))
	})
	p, err := newOpenRouter(OpenRouterConfig{APIKey: "sk-or-test", Model: "meta-llama/llama-3-8b", BaseURL: base})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "plain text works too", string(resp.Content))
}

func TestNewChatCompletions(t *testing.T) {
	_, err := newOpenAI(OpenAIConfig{})
	assert.Error(t, err)
	_, err = newOpenRouter(OpenRouterConfig{})
	assert.Error(t, err)

	p, err := newOpenRouter(OpenRouterConfig{APIKey: "k", Model: "anthropic/claude-3-haiku"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())
	assert.Equal(t, "openrouter", p.vendor)

	p, err = newOpenAI(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())
	assert.Equal(t, "openai", p.vendor)
}
