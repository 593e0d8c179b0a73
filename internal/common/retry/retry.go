// Package retry implements the bounded fixed-delay polling used when the
// identity provider completes an operation asynchronously: a small attempt
// count, a constant wait between attempts, and a terminal error once the
// bound is exceeded.
package retry

import (
	"context"
	"errors"
	"time"
)

// ErrExhausted is returned when every attempt failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Sleeper waits out the delay between attempts. Injectable so tests can run
// with a fake clock.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the production Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs fn up to attempts times with a fixed delay between runs. fn
// reports (done, err): done stops immediately with err as the outcome;
// otherwise the last error is wrapped in ErrExhausted once attempts run out.
func Do(ctx context.Context, attempts int, delay time.Duration, sleep Sleeper, fn func(attempt int) (bool, error)) error {
	if sleep == nil {
		sleep = Sleep
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}
		done, err := fn(i)
		if done {
			return err
		}
		lastErr = err
	}
	if lastErr != nil {
		return errors.Join(ErrExhausted, lastErr)
	}
	return ErrExhausted
}
