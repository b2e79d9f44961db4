package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scanSummarySchema = &Schema{
	Name: "scan-summary",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operator": map[string]any{"type": "string"},
			"clarity":  map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"sector":   map[string]any{"type": "string", "enum": []any{"strength", "weakness", "opportunity", "threat"}},
			"resources": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":       "object",
					"properties": map[string]any{"title": map[string]any{"type": "string"}},
					"required":   []any{"title"},
				},
			},
		},
		"required": []any{"operator", "clarity"},
	},
}

func TestConform(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		ok     bool
	}{
		{"complete", `{"operator":"NEO","clarity":70,"sector":"strength"}`, true},
		{"optional fields omitted", `{"operator":"NEO","clarity":40}`, true},
		{"nested resources", `{"operator":"NEO","clarity":1,"resources":[{"title":"LeetCode 75"}]}`, true},
		{"missing clarity", `{"operator":"NEO"}`, false},
		{"clarity out of range", `{"operator":"NEO","clarity":101}`, false},
		{"clarity as text", `{"operator":"NEO","clarity":"high"}`, false},
		{"unknown sector", `{"operator":"NEO","clarity":5,"sector":"luck"}`, false},
		{"resource without title", `{"operator":"NEO","clarity":5,"resources":[{}]}`, false},
		{"not json", `operator NEO`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := conform(scanSummarySchema, json.RawMessage(tt.answer))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.answer, string(invalid.Content))
		})
	}
}

func TestConformWithoutSchema(t *testing.T) {
	assert.NoError(t, conform(nil, json.RawMessage(`plain words`)))
}

func TestConformCachesCompiledSchema(t *testing.T) {
	require.NoError(t, conform(scanSummarySchema, json.RawMessage(`{"operator":"A","clarity":2}`)))
	first, ok := compiled.Load(scanSummarySchema)
	require.True(t, ok)

	require.NoError(t, conform(scanSummarySchema, json.RawMessage(`{"operator":"B","clarity":3}`)))
	second, _ := compiled.Load(scanSummarySchema)
	assert.Same(t, first, second)
}

func TestUnfence(t *testing.T) {
	assert.JSONEq(t, `{"reply":"ship it"}`, string(unfence(json.RawMessage("```json\n{\"reply\":\"ship it\"}\n```"))))
	assert.JSONEq(t, `{"reply":"ship it"}`, string(unfence(json.RawMessage("```\n{\"reply\":\"ship it\"}```"))))
	assert.Equal(t, `{"a":1}`, string(unfence(json.RawMessage(`{"a":1}`))))
	assert.Equal(t, "```", string(unfence(json.RawMessage("```"))))
}

func TestFinish(t *testing.T) {
	req := Request{Schema: scanSummarySchema}

	resp, err := finish(req, "```json\n{\"operator\":\"NEO\",\"clarity\":9}\n```", newUsage(4, 6), "m", StopEnd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"operator":"NEO","clarity":9}`, string(resp.Content))
	assert.Equal(t, 10, resp.Usage.TotalTokens)

	_, err = finish(req, `{"operator":"NE`, Usage{}, "m", StopMaxTokens)
	var truncated *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, `{"operator":"NE`, string(truncated.Content))

	resp, err = finish(Request{}, "free text", Usage{}, "m", StopMaxTokens)
	require.NoError(t, err)
	assert.Equal(t, "free text", string(resp.Content))
	assert.Equal(t, StopMaxTokens, resp.StopReason)
}
