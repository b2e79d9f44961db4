// Package llm talks to the hosted language models behind the Oracle.
//
// Every vendor adapter satisfies Provider. NewProvider stacks the adapter
// under request logging and retry, so callers only see normalized
// Responses and the typed errors in errors.go.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion for a conversation.
type Provider interface {
	// Generate returns the model's answer. When req.Schema is set the
	// Content has already been checked against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID names the configured model.
	ModelID() string
}

// Role is who spoke a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Schema is a named JSON Schema the answer must satisfy.
type Schema struct {
	// Name is kebab-case, e.g. "oracle-reply". OpenAI uses it as the
	// response format name.
	Name        string
	Description string
	Definition  map[string]any
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema switches the vendor into structured output. Nil means the
	// raw text comes back as Content.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// StopReason is the vendor-independent reason generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a normalized completion.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage counts the tokens billed for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

type purposeKey struct{}

// DefaultPurpose labels calls whose context carries no purpose.
const DefaultPurpose = "unknown"

// WithPurpose tags ctx with what the call is for, e.g. "oracle". The tag
// ends up on the recorded request event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeOf returns the tag set by WithPurpose.
func PurposeOf(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return DefaultPurpose
}

// finish turns a vendor's raw answer into a Response. A truncated answer
// to a structured request cannot be valid JSON, so it is reported as
// ErrMaxTokensExceeded before validation runs.
func finish(req Request, text string, usage Usage, model string, stop StopReason) (*Response, error) {
	content := json.RawMessage(text)
	if req.Schema != nil {
		content = unfence(content)
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := conform(req.Schema, content); err != nil {
			return nil, err
		}
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel expands a short alias from aliases. Anything else is taken
// to be a vendor model ID already.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
