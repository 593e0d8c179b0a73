package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeSleeper(slept *[]time.Duration) Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := Do(context.Background(), 5, 300*time.Millisecond, fakeSleeper(&slept), func(attempt int) (bool, error) {
		calls++
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, slept, "no sleeping before the first attempt")
}

func TestDo_FixedDelayBetweenAttempts(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := Do(context.Background(), 3, 500*time.Millisecond, fakeSleeper(&slept), func(attempt int) (bool, error) {
		calls++
		if calls == 3 {
			return true, nil
		}
		return false, errors.New("not yet")
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, slept)
}

func TestDo_ExhaustsWithLastError(t *testing.T) {
	var slept []time.Duration
	sentinel := errors.New("still failing")
	err := Do(context.Background(), 2, time.Millisecond, fakeSleeper(&slept), func(attempt int) (bool, error) {
		return false, sentinel
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, sentinel)
}

func TestDo_DoneWithErrorStopsEarly(t *testing.T) {
	terminal := errors.New("terminal")
	calls := 0
	err := Do(context.Background(), 5, time.Millisecond, fakeSleeper(&[]time.Duration{}), func(attempt int) (bool, error) {
		calls++
		return true, terminal
	})
	assert.ErrorIs(t, err, terminal)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sleep := func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}
	err := Do(ctx, 3, time.Second, sleep, func(attempt int) (bool, error) {
		return false, errors.New("keep going")
	})
	assert.ErrorIs(t, err, context.Canceled)
}
