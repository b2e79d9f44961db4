package oracle

import "github.com/abhisek/karmaloop/internal/llm"

// ReplySchema constrains the advisor's answer to a single text field.
var ReplySchema = &llm.Schema{
	Name:        "oracle-reply",
	Description: "One short advisory reply to the user's career question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{
				"type":        "string",
				"description": "2-4 sentences of concrete career advice in the KarmaLoop terminal voice",
			},
		},
		"required":             []any{"reply"},
		"additionalProperties": false,
	},
}
