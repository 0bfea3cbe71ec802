package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different key should also work
	if err := limiter.Wait(ctx, "ollama"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	start := time.Now()
	err := limiter.WaitWithDelay(ctx, "openai", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}

	duration := time.Since(start)
	if duration < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", duration)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	// 1 rps, burst 1
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	key := "openai"

	// First request ok
	if err := limiter.Wait(ctx, key); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Burst 1, token consumed: Allow must fail immediately
	if limiter.Allow(key) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// Different key should be allowed
	if !limiter.Allow("ollama") {
		t.Errorf("expected allow for other key")
	}
}

func TestLimiter_SetKeyRate(t *testing.T) {
	limiter := NewLimiter(10, 10) // fast default
	key := "slow-provider"

	// Set strict limit for specific key
	limiter.SetKeyRate(key, 0.1, 1) // very slow

	// First request passes (burst 1)
	if !limiter.Allow(key) {
		t.Errorf("first request should pass")
	}

	// Second request fails
	if limiter.Allow(key) {
		t.Errorf("second request should fail")
	}

	// Other key still fast
	if !limiter.Allow("fast-provider") {
		t.Errorf("other key should pass")
	}
}
