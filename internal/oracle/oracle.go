// Package oracle implements the advisory chat surface. With an LLM provider
// it answers from the user's SWOT profile; without one it stays in
// diagnostic mode and returns a fixed reply.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/karmaloop/internal/llm"
	"github.com/abhisek/karmaloop/internal/logging"
	"github.com/abhisek/karmaloop/internal/store"
)

// Purpose labels oracle requests in the LLM event log.
const Purpose = "oracle"

// DiagnosticReply is returned when no model is reachable.
const DiagnosticReply = "I am processing your query. My neural link to the main server is currently limited to diagnostic mode. Please proceed with the dashboard modules."

// ErrEmptyMessage is returned for blank user input.
var ErrEmptyMessage = errors.New("message is empty")

// Source tells where a reply came from.
type Source string

const (
	SourceModel      Source = "model"
	SourceDiagnostic Source = "diagnostic"
)

// Reply is one advisor answer.
type Reply struct {
	Text   string
	Source Source
}

// Greeting opens the chat, addressing the user by archetype.
func Greeting(p *store.ProfileRecord) string {
	archetype := "User"
	if p != nil && p.Strength != "" {
		archetype = p.Strength
	}
	return fmt.Sprintf("Greetings, %s. My logic cores are online. How can I assist your optimization today?", archetype)
}

// Advisor answers chat messages.
type Advisor struct {
	provider llm.Provider
	cfg      Config
	log      *logging.Logger
}

// New creates an Advisor. provider may be nil.
func New(provider llm.Provider, cfg Config, log *logging.Logger) *Advisor {
	if log == nil {
		log = logging.Nop()
	}
	return &Advisor{provider: provider, cfg: cfg, log: log.With("component", "oracle")}
}

// Online reports whether a model backs the advisor.
func (a *Advisor) Online() bool {
	return a.provider != nil
}

type replyOutput struct {
	Reply string `json:"reply"`
}

// Reply answers text given the prior transcript. Provider failures degrade
// to DiagnosticReply and are logged, not returned.
func (a *Advisor) Reply(ctx context.Context, p *store.ProfileRecord, history []llm.Message, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}
	if a.provider == nil {
		return Reply{Text: DiagnosticReply, Source: SourceDiagnostic}, nil
	}

	if n := a.cfg.HistoryLimit; n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})

	resp, err := a.provider.Generate(llm.WithPurpose(ctx, Purpose), llm.Request{
		System:      buildSystemPrompt(p),
		Messages:    msgs,
		Schema:      ReplySchema,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		if ctx.Err() != nil {
			return Reply{}, ctx.Err()
		}
		a.log.Warn("oracle falling back to diagnostic mode", "error", err)
		return Reply{Text: DiagnosticReply, Source: SourceDiagnostic}, nil
	}

	var out replyOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil || strings.TrimSpace(out.Reply) == "" {
		a.log.Warn("oracle reply unparseable", "error", err)
		return Reply{Text: DiagnosticReply, Source: SourceDiagnostic}, nil
	}
	return Reply{Text: strings.TrimSpace(out.Reply), Source: SourceModel}, nil
}
