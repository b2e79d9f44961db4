package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var replySchema = &Schema{
	Name: "oracle-reply",
	Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"reply": map[string]any{"type": "string"}},
		"required":   []any{"reply"},
	},
}

func TestMockProviderReplaysScript(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"reply":"Mock interviews, twice a week."}`), Usage: newUsage(12, 8)},
		MockResponse{Err: errors.New("boom")},
	)
	ctx := context.Background()

	resp, err := mock.Generate(ctx, Request{Schema: replySchema, Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reply":"Mock interviews, twice a week."}`, string(resp.Content))
	assert.Equal(t, 20, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, MockModel, resp.Model)

	_, err = mock.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	assert.EqualError(t, err, "boom")

	_, err = mock.Generate(ctx, Request{})
	var down *ErrProviderUnavailable
	assert.ErrorAs(t, err, &down)

	require.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "second", mock.Calls[1].Messages[0].Content)
}

func TestMockProviderChecksSchema(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"answer":"wrong key"}`)},
		MockResponse{Content: json.RawMessage(`{"reply":"cut o`), StopReason: StopMaxTokens},
	)

	_, err := mock.Generate(context.Background(), Request{Schema: replySchema})
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)

	_, err = mock.Generate(context.Background(), Request{Schema: replySchema})
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestMockProviderAddResponse(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Content: json.RawMessage(`plain`)})

	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "plain", string(resp.Content))
	assert.Equal(t, MockModel, mock.ModelID())
}

func TestPurposeOf(t *testing.T) {
	assert.Equal(t, DefaultPurpose, PurposeOf(context.Background()))
	assert.Equal(t, DefaultPurpose, PurposeOf(WithPurpose(context.Background(), "")))
	assert.Equal(t, "oracle", PurposeOf(WithPurpose(context.Background(), "oracle")))
}
