package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retrying re-issues failed calls with capped exponential backoff. A
// schema failure is retried at most once because a model that got the
// shape wrong twice rarely gets it right on the third try.
type retrying struct {
	next   Provider
	policy RetryConfig
	sleep  func(context.Context, time.Duration) error
}

// WithRetry wraps p with policy. MaxAttempts below one means one attempt.
func WithRetry(p Provider, policy RetryConfig) Provider {
	return &retrying{next: p, policy: policy, sleep: sleepCtx}
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.policy.MaxAttempts, 1)
	reshaped := false

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if serr := r.sleep(ctx, r.delay(attempt-1, err)); serr != nil {
				return nil, serr
			}
		}

		var resp *Response
		resp, err = r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !transient(err) {
			return nil, err
		}
		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) {
			if reshaped {
				return nil, err
			}
			reshaped = true
		}
	}
	return nil, err
}

func (r *retrying) ModelID() string { return r.next.ModelID() }

// delay is the wait before retry n+1. A vendor Retry-After wins over the
// computed backoff.
func (r *retrying) delay(n int, cause error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(cause, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	d := r.policy.InitialWait
	for range n {
		d = time.Duration(float64(d) * r.policy.Multiplier)
		if r.policy.MaxWait > 0 && d >= r.policy.MaxWait {
			d = r.policy.MaxWait
			break
		}
	}
	if d <= 0 {
		return 0
	}
	// Up to 20% either way so parallel clients drift apart.
	spread := int64(d) / 5
	if spread > 0 {
		d += time.Duration(rand.Int64N(2*spread+1) - spread)
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
