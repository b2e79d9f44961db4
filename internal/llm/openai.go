package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

var openaiAliases = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

const openRouterURL = "https://openrouter.ai/api/v1"

// chatCompletions speaks the OpenAI chat completions protocol. OpenRouter
// serves the same protocol, so both vendors share it.
type chatCompletions struct {
	vendor string
	client *openai.Client
	model  string
}

func newOpenAI(cfg OpenAIConfig) (*chatCompletions, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: api key missing")
	}
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	return &chatCompletions{
		vendor: "openai",
		client: openai.NewClientWithConfig(c),
		model:  resolveModel(cfg.Model, openaiAliases),
	}, nil
}

// newOpenRouter keeps the model ID verbatim; OpenRouter IDs carry the
// upstream vendor ("google/gemini-2.0-flash-exp").
func newOpenRouter(cfg OpenRouterConfig) (*chatCompletions, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: api key missing")
	}
	c := openai.DefaultConfig(cfg.APIKey)
	c.BaseURL = cfg.BaseURL
	if c.BaseURL == "" {
		c.BaseURL = openRouterURL
	}
	c.HTTPClient = &http.Client{Transport: attribution{next: http.DefaultTransport}}
	return &chatCompletions{
		vendor: "openrouter",
		client: openai.NewClientWithConfig(c),
		model:  cfg.Model,
	}, nil
}

// attribution names the app on OpenRouter's dashboards.
type attribution struct{ next http.RoundTripper }

func (a attribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", "KarmaLoop")
	r.Header.Set("HTTP-Referer", "https://github.com/abhisek/karmaloop")
	return a.next.RoundTrip(r)
}

func (c *chatCompletions) Generate(ctx context.Context, req Request) (*Response, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	call := openai.ChatCompletionRequest{
		Model:               c.model,
		Messages:            msgs,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("%s: encode schema %s: %w", c.vendor, req.Schema.Name, err)
		}
		call.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	out, err := c.client.CreateChatCompletion(ctx, call)
	if err != nil {
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		switch {
		case errors.As(err, &apiErr):
			return nil, classify(apiErr.HTTPStatusCode, nil, err)
		case errors.As(err, &reqErr):
			return nil, classify(reqErr.HTTPStatusCode, nil, err)
		}
		return nil, classify(0, nil, err)
	}
	if len(out.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s: empty choices", c.vendor)}
	}

	choice := out.Choices[0]
	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	usage := newUsage(out.Usage.PromptTokens, out.Usage.CompletionTokens)
	return finish(req, choice.Message.Content, usage, out.Model, stop)
}

func (c *chatCompletions) ModelID() string { return c.model }
