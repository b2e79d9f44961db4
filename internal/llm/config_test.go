package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigFrom_Defaults(t *testing.T) {
	cfg, err := ConfigFrom(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "" {
		t.Errorf("provider = %q, want empty", cfg.Provider)
	}
	if cfg.Anthropic.Model != "claude-haiku" || cfg.OpenAI.Model != "gpt-4o-mini" || cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("unexpected model defaults: %+v", cfg)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.InitialWait != time.Second || cfg.Retry.Multiplier != 2 {
		t.Errorf("unexpected retry defaults: %+v", cfg.Retry)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %s, want 30s", cfg.Timeout)
	}
}

func TestConfigFrom_Overrides(t *testing.T) {
	cfg, err := ConfigFrom(map[string]string{
		"KARMALOOP_LLM_PROVIDER":           "openrouter",
		"KARMALOOP_OPENROUTER_API_KEY":     "sk-or-test",
		"KARMALOOP_OPENROUTER_MODEL":       "meta-llama/llama-3-8b",
		"KARMALOOP_LLM_RETRY_MAX_ATTEMPTS": "5",
		"KARMALOOP_LLM_TIMEOUT":            "5s",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "openrouter" || cfg.OpenRouter.APIKey != "sk-or-test" || cfg.OpenRouter.Model != "meta-llama/llama-3-8b" {
		t.Errorf("unexpected openrouter config: %+v", cfg.OpenRouter)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("max attempts = %d, want 5", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %s, want 5s", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestConfigFrom_BadDuration(t *testing.T) {
	if _, err := ConfigFrom(map[string]string{"KARMALOOP_LLM_TIMEOUT": "soon"}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mock", Config{Provider: "mock"}, false},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"unknown", Config{Provider: "hal9000"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := (Config{}).Validate(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("empty provider error = %v, want ErrNotConfigured", err)
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gpt-4o-mini"); c == nil || c.InputPerMTok != 0.15 {
		t.Errorf("gpt-4o-mini cost = %+v", c)
	}
	if c := LookupCost("google/gemini-2.0-flash-exp"); c == nil || c.OutputPerMTok != 0.4 {
		t.Errorf("openrouter gemini cost = %+v", c)
	}
	if c := LookupCost("unknown-model"); c != nil {
		t.Errorf("unknown model cost = %+v, want nil", c)
	}
	got := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}.Cost(1_000_000, 200_000)
	if got != 2 {
		t.Errorf("cost = %v, want 2", got)
	}
}

func TestDiscover(t *testing.T) {
	env := map[string]string{"OPENAI_API_KEY": "sk-1", "ANTHROPIC_API_KEY": "sk-ant"}
	cfg, ok := discover(func(k string) string { return env[k] })
	if !ok {
		t.Fatal("expected a provider")
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-1" {
		t.Errorf("discovered %q with key %q, want openai first", cfg.Provider, cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("model default lost: %q", cfg.OpenAI.Model)
	}

	env["GEMINI_API_KEY"] = "g-1"
	if cfg, _ := discover(func(k string) string { return env[k] }); cfg.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini to win", cfg.Provider)
	}

	if _, ok := discover(func(string) string { return "" }); ok {
		t.Error("expected no provider without keys")
	}
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	if _, err := NewProvider(ctx, Config{}, nil, nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("empty config error = %v, want ErrNotConfigured", err)
	}

	p, err := NewProvider(ctx, Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Errorf("mock provider wrapped as %T", p)
	}

	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	cfg.Anthropic.APIKey = "sk-ant"
	p, err = NewProvider(ctx, cfg, nil, nil)
	if err != nil {
		t.Fatalf("anthropic: %v", err)
	}
	r, ok := p.(*retrying)
	if !ok {
		t.Fatalf("outer layer is %T, want retry", p)
	}
	if rec, ok := r.next.(*recorder); !ok || rec.vendor != "anthropic" {
		t.Errorf("inner layer is %T, want recorder for anthropic", r.next)
	}
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Errorf("model = %q", p.ModelID())
	}
}
