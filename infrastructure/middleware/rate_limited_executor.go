package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/ahrav/go-gavel/internal/domain"
)

// rateLimitedExecutor wraps a domain.Executor with a token-bucket rate
// limiter, pacing Execute calls for vertices that front a rate-sensitive
// external resource (a remote API, a disk-bound sink) behind an
// otherwise CPU-bound wave schedule.
type rateLimitedExecutor struct {
	ctx     context.Context
	next    domain.Executor
	limiter *rate.Limiter
}

// RateLimitExecutor wraps an Executor so that each Execute call first
// waits for a token from a limit-requests-per-second, burst-sized bucket.
// ctx bounds how long Execute is willing to wait for a token; a context
// that's already past its deadline makes every call fail fast.
func RateLimitExecutor(ctx context.Context, next domain.Executor, limit rate.Limit, burst int) domain.Executor {
	return &rateLimitedExecutor{
		ctx:     ctx,
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Prepare implements domain.Executor by forwarding to the wrapped executor.
func (r *rateLimitedExecutor) Prepare(liveOutputs []bool) {
	r.next.Prepare(liveOutputs)
}

// Execute implements domain.Executor, blocking until the rate limiter
// admits the call before forwarding to the wrapped executor. A limiter
// wait failure (context canceled or past its deadline, or a wait the bucket
// can never satisfy) panics with the wrapped limiter error; the wrapped
// executor is not called.
func (r *rateLimitedExecutor) Execute(inputs []domain.Value) []domain.Value {
	if err := r.limiter.Wait(r.ctx); err != nil {
		panic(fmt.Errorf("rate limit: %w", err))
	}
	return r.next.Execute(inputs)
}
