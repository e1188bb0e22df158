package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

// retryPolicy bounds how long start-up waits for a dependency.
type retryPolicy struct {
	Retries uint64
	Base    time.Duration
}

var defaultRetryPolicy = retryPolicy{Retries: 5, Base: 500 * time.Millisecond}

func (p retryPolicy) backoff() retry.Backoff {
	return retry.WithMaxRetries(p.Retries, retry.NewExponential(p.Base))
}

// connectWithRetry calls connect until it succeeds, the retries run out or
// ctx is done. Every connect failure is retryable.
func connectWithRetry[T any](ctx context.Context, p retryPolicy, log zerolog.Logger, name string, connect func(context.Context) (T, error)) (T, error) {
	var out T
	attempt := 0
	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++
		v, err := connect(ctx)
		if err != nil {
			log.Warn().Err(err).Str("dependency", name).Int("attempt", attempt).Msg("connect failed")
			return retry.RetryableError(err)
		}
		out = v
		return nil
	})
	if err != nil {
		return out, err
	}
	log.Info().Str("dependency", name).Msg("connected")
	return out, nil
}
