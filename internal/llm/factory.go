package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/karmaloop/internal/logging"
	"github.com/abhisek/karmaloop/internal/store"
)

// ErrNotConfigured means no vendor was selected or discovered. The Oracle
// then runs in diagnostic mode.
var ErrNotConfigured = errors.New("no LLM provider configured")

// vendor describes one supported backend.
type vendor struct {
	name string
	// discoverEnv is the vendor's own key variable, also the suffix of
	// the KARMALOOP_ variable.
	discoverEnv string
	key         func(*Config) *string
	open        func(context.Context, Config) (Provider, error)
}

// vendors is in discovery order.
var vendors = []vendor{
	{
		name:        "gemini",
		discoverEnv: "GEMINI_API_KEY",
		key:         func(c *Config) *string { return &c.Gemini.APIKey },
		open:        func(ctx context.Context, c Config) (Provider, error) { return newGemini(ctx, c.Gemini) },
	},
	{
		name:        "openai",
		discoverEnv: "OPENAI_API_KEY",
		key:         func(c *Config) *string { return &c.OpenAI.APIKey },
		open:        func(_ context.Context, c Config) (Provider, error) { return newOpenAI(c.OpenAI) },
	},
	{
		name:        "anthropic",
		discoverEnv: "ANTHROPIC_API_KEY",
		key:         func(c *Config) *string { return &c.Anthropic.APIKey },
		open:        func(_ context.Context, c Config) (Provider, error) { return newClaude(c.Anthropic) },
	},
	{
		name:        "openrouter",
		discoverEnv: "OPENROUTER_API_KEY",
		key:         func(c *Config) *string { return &c.OpenRouter.APIKey },
		open:        func(_ context.Context, c Config) (Provider, error) { return newOpenRouter(c.OpenRouter) },
	},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

// NewProvider builds the configured vendor adapter and stacks retry over
// logging over it, so every attempt is recorded. The mock provider is
// returned bare.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *logging.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Provider == MockModel {
		return NewMockProvider(), nil
	}

	v, _ := lookupVendor(cfg.Provider)
	base, err := v.open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s provider: %w", v.name, err)
	}
	return WithRetry(WithLogging(base, v.name, events, log), cfg.Retry), nil
}

// NewProviderFromEnv reads KARMALOOP_* variables and falls back to vendor
// key discovery when no provider is named.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo, log *logging.Logger) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.Provider == "" {
		found, ok := DiscoverConfig()
		if !ok {
			return nil, ErrNotConfigured
		}
		found.Retry, found.Timeout = cfg.Retry, cfg.Timeout
		cfg = found
	}
	return NewProvider(ctx, cfg, events, log)
}
