package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/forgo/agenda/internal/model"
	"github.com/forgo/agenda/internal/service"
)

// ============================================================================
// NewRateLimiter Tests (Configuration)
// ============================================================================

func TestNewRateLimiter_DefaultConfig(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{})
	defer rl.Stop()

	if rl.rate != 100 {
		t.Errorf("expected default rate 100, got %d", rl.rate)
	}
	if rl.window != time.Minute {
		t.Errorf("expected default window 1m, got %v", rl.window)
	}
	if rl.burst != 120 {
		t.Errorf("expected bucket capacity 120, got %d", rl.burst)
	}
}

func TestRateLimiter_Stop_Idempotent(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{})

	rl.Stop()
	rl.Stop()
}

// ============================================================================
// Allow() Tests
// ============================================================================

func TestAllow_ExhaustsBucketThenDenies(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{Rate: 2, Window: time.Hour, Burst: 1})
	defer rl.Stop()

	now := time.Now()
	for i := 0; i < 3; i++ {
		allowed, remaining, _ := rl.allowAt("k", now)
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if remaining != 2-i {
			t.Errorf("request %d: expected remaining %d, got %d", i+1, 2-i, remaining)
		}
	}

	allowed, remaining, reset := rl.allowAt("k", now)
	if allowed {
		t.Fatal("fourth request should be denied")
	}
	if remaining != 0 {
		t.Errorf("expected remaining 0, got %d", remaining)
	}
	if !reset.After(now) {
		t.Errorf("expected reset in the future, got %v", reset)
	}
}

func TestAllow_DifferentKeys_SeparateBuckets(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Window: time.Hour, Burst: 1})
	defer rl.Stop()

	now := time.Now()
	rl.allowAt("a", now)
	rl.allowAt("a", now)

	if allowed, _, _ := rl.allowAt("a", now); allowed {
		t.Error("key a should be exhausted")
	}
	if allowed, _, _ := rl.allowAt("b", now); !allowed {
		t.Error("key b should have its own bucket")
	}
	if rl.Len() != 2 {
		t.Errorf("expected 2 tracked callers, got %d", rl.Len())
	}
}

func TestAllow_RefillsOverTime(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{Rate: 60, Window: time.Minute, Burst: 1})
	defer rl.Stop()

	now := time.Now()
	for i := 0; i < 61; i++ {
		rl.allowAt("k", now)
	}
	if allowed, _, _ := rl.allowAt("k", now); allowed {
		t.Fatal("bucket should be empty")
	}

	// 60 per minute refills one token per second
	if allowed, _, _ := rl.allowAt("k", now.Add(1100*time.Millisecond)); !allowed {
		t.Error("expected a token after one second")
	}
}

func TestAllow_ConcurrentAccess_ThreadSafe(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{Rate: 50, Window: time.Hour, Burst: 10})
	defer rl.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if allowed, _, _ := rl.Allow("shared"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
			rl.Allow(fmt.Sprintf("key-%d", i))
		}(i)
	}
	wg.Wait()

	if allowedCount != 60 {
		t.Errorf("expected 60 allowed requests, got %d", allowedCount)
	}
	if rl.Len() != 101 {
		t.Errorf("expected 101 tracked callers, got %d", rl.Len())
	}
}

func TestEvictIdle_RemovesOnlyStaleBuckets(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{Rate: 10, Window: time.Minute})
	defer rl.Stop()

	now := time.Now()
	rl.allowAt("stale", now.Add(-5*time.Minute))
	rl.allowAt("fresh", now)

	rl.evictIdle(now)

	if rl.Len() != 1 {
		t.Fatalf("expected 1 tracked caller, got %d", rl.Len())
	}
	rl.mu.Lock()
	_, ok := rl.clients["fresh"]
	rl.mu.Unlock()
	if !ok {
		t.Error("fresh bucket should be kept")
	}
}

// ============================================================================
// RateLimit Middleware Tests
// ============================================================================

func TestRateLimitMiddleware_AllowedRequest_SetsHeaders(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{Rate: 100, Window: time.Minute, Burst: 20})
	defer rl.Stop()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rr := httptest.NewRecorder()

	RateLimit(rl)(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if !handler.called {
		t.Error("handler should have been called")
	}
	if rr.Header().Get("X-RateLimit-Limit") != "100" {
		t.Errorf("expected X-RateLimit-Limit '100', got %q", rr.Header().Get("X-RateLimit-Limit"))
	}
	if got := rr.Header().Get("X-RateLimit-Remaining"); got != "119" {
		t.Errorf("expected X-RateLimit-Remaining '119', got %q", got)
	}
	if rr.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("expected X-RateLimit-Reset header")
	}
}

func TestRateLimitMiddleware_DeniedRequest_Returns429(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{Rate: 2, Window: time.Hour, Burst: 1})
	defer rl.Stop()

	handler := &captureHandler{}
	mw := RateLimit(rl)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		mw(handler).ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rr := httptest.NewRecorder()
	handler.called = false
	mw(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rr.Code)
	}
	if handler.called {
		t.Error("handler should not have been called")
	}

	retryAfter, err := strconv.Atoi(rr.Header().Get("Retry-After"))
	if err != nil || retryAfter < 1 {
		t.Errorf("expected positive Retry-After, got %q", rr.Header().Get("Retry-After"))
	}
	if f := decodeFailure(t, rr); f.Code != model.ErrCodeRateLimited {
		t.Errorf("expected codigo %d, got %d", model.ErrCodeRateLimited, f.Code)
	}
}

func TestRateLimitMiddleware_KeysByIdentityEmail(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Window: time.Hour, Burst: 1})
	defer rl.Stop()

	handler := &captureHandler{}
	mw := RateLimit(rl)

	send := func(email string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req = req.WithContext(WithIdentity(req.Context(), &service.Identity{Email: email}))
		rr := httptest.NewRecorder()
		mw(handler).ServeHTTP(rr, req)
		return rr.Code
	}

	send("ana@example.com")
	send("ana@example.com")
	if code := send("ana@example.com"); code != http.StatusTooManyRequests {
		t.Errorf("expected ana to be limited, got %d", code)
	}
	if code := send("luis@example.com"); code != http.StatusOK {
		t.Errorf("expected a different caller on the same address to pass, got %d", code)
	}
}

func TestRateLimitMiddleware_KeysByAddress_WhenAnonymous(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Window: time.Hour, Burst: 1})
	defer rl.Stop()

	handler := &captureHandler{}
	mw := RateLimit(rl)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		mw(handler).ServeHTTP(rr, req)
		return rr.Code
	}

	send("10.0.0.1:1")
	send("10.0.0.1:1")
	if code := send("10.0.0.1:1"); code != http.StatusTooManyRequests {
		t.Errorf("expected address to be limited, got %d", code)
	}
	if code := send("10.0.0.2:1"); code != http.StatusOK {
		t.Errorf("expected other address to pass, got %d", code)
	}
}
