package ratelimit_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-credential-guard/ratelimit"
)

func TestLimiter_ThresholdAndReset(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewLimiter(5, 15*time.Minute,
		ratelimit.WithNowTime(func() time.Time { return now }))

	t.Run("allowed below threshold", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			limiter.RecordFailure("u1")
			require.True(t, limiter.Allow("u1"))
		}
	})

	t.Run("denied at threshold", func(t *testing.T) {
		limiter.RecordFailure("u1")
		require.False(t, limiter.Allow("u1"))
	})

	t.Run("retry after reflects oldest failure", func(t *testing.T) {
		retryAfter := limiter.RetryAfter("u1")
		require.Greater(t, retryAfter, time.Duration(0))
		require.LessOrEqual(t, retryAfter, 15*time.Minute)
	})

	t.Run("reset allows immediately", func(t *testing.T) {
		limiter.Reset("u1")
		require.True(t, limiter.Allow("u1"))
		require.Equal(t, time.Duration(0), limiter.RetryAfter("u1"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			limiter.RecordFailure("u2")
		}
		require.False(t, limiter.Allow("u2"))
		require.True(t, limiter.Allow("u3"))
	})
}

func TestLimiter_SlidingWindow(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewLimiter(5, 15*time.Minute,
		ratelimit.WithNowTime(func() time.Time { return now }))

	for i := 0; i < 5; i++ {
		limiter.RecordFailure("u1")
	}
	require.False(t, limiter.Allow("u1"))

	// Old failures age out of the trailing window without any reset.
	now = now.Add(15*time.Minute + time.Second)
	require.True(t, limiter.Allow("u1"))
}

func TestLimiter_PartialExpiry(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewLimiter(5, 15*time.Minute,
		ratelimit.WithNowTime(func() time.Time { return now }))

	// Three early failures, then two late ones.
	for i := 0; i < 3; i++ {
		limiter.RecordFailure("u1")
	}
	now = now.Add(10 * time.Minute)
	limiter.RecordFailure("u1")
	limiter.RecordFailure("u1")
	require.False(t, limiter.Allow("u1"))

	// The three early failures age out; only two remain in the window.
	now = now.Add(6 * time.Minute)
	require.True(t, limiter.Allow("u1"))
}

func TestLimiter_Defaults(t *testing.T) {
	limiter := ratelimit.NewLimiter(0, 0)

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow("u1"))
		limiter.RecordFailure("u1")
	}
	require.False(t, limiter.Allow("u1"))
}

func TestLimiter_ConcurrentAccess(t *testing.T) {
	limiter := ratelimit.NewLimiter(200, 15*time.Minute)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", worker%2)
			for i := 0; i < 50; i++ {
				limiter.Allow(key)
				limiter.RecordFailure(key)
			}
		}(worker)
	}
	wg.Wait()

	// Counters survive the interleaving with no lost updates: 4 workers
	// per key, 50 failures each.
	require.False(t, limiter.Allow("key-0"))
	require.False(t, limiter.Allow("key-1"))
}
