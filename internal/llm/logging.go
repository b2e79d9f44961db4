package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/karmaloop/internal/logging"
	"github.com/abhisek/karmaloop/internal/store"
)

// recorder writes one llm_request event per call, successful or not.
type recorder struct {
	next   Provider
	vendor string
	events store.EventRepo
	log    *logging.Logger
}

// WithLogging records every call made through p under vendor. A nil
// repo only logs; a nil logger discards.
func WithLogging(p Provider, vendor string, events store.EventRepo, log *logging.Logger) Provider {
	if log == nil {
		log = logging.Nop()
	}
	return &recorder{next: p, vendor: vendor, events: events, log: log.With("component", "llm", "vendor", vendor)}
}

func (r *recorder) Generate(ctx context.Context, req Request) (*Response, error) {
	started := time.Now()
	resp, err := r.next.Generate(ctx, req)
	elapsed := time.Since(started).Milliseconds()

	ev := store.LLMRequestEventData{
		Provider:    r.vendor,
		Model:       r.next.ModelID(),
		Purpose:     PurposeOf(ctx),
		LatencyMs:   elapsed,
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	fields := []any{"purpose", ev.Purpose, "model", ev.Model, "latency_ms", elapsed}
	if err != nil {
		ev.ErrorMessage = err.Error()
		r.log.Warn("llm call failed", append(fields, "error", err)...)
	} else {
		r.log.Debug("llm call", append(fields, "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)...)
	}

	if r.events != nil {
		if werr := r.events.AppendLLMRequest(ctx, ev); werr != nil {
			r.log.Warn("llm event not recorded", "error", werr)
		}
	}
	return resp, err
}

func (r *recorder) ModelID() string { return r.next.ModelID() }

// transcript renders req the way `karmaloop llm show` prints it.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
