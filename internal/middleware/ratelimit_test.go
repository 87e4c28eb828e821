package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
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
	if rl.burst != 20 {
		t.Errorf("expected default burst 20, got %d", rl.burst)
	}
}

func TestNewRateLimiter_CustomConfig(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   50,
		Window: 30 * time.Second,
		Burst:  10,
	})
	defer rl.Stop()

	if rl.rate != 50 || rl.window != 30*time.Second || rl.burst != 10 {
		t.Errorf("custom config not applied: rate=%d window=%v burst=%d",
			rl.rate, rl.window, rl.burst)
	}
}

// ============================================================================
// Allow() Tests
// ============================================================================

func TestAllow_NewClient_StartsWithFullBucket(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   10,
		Window: time.Minute,
		Burst:  5,
	})
	defer rl.Stop()

	allowed, remaining, _ := rl.Allow("203.0.113.7:52100")

	if !allowed {
		t.Error("first request should be allowed")
	}
	// A fresh bucket holds rate+burst tokens; this request spends one.
	if remaining != 14 {
		t.Errorf("expected remaining 14, got %d", remaining)
	}
}

func TestAllow_ExhaustedClient_Denied(t *testing.T) {
	t.Parallel()
	// Burst=0 falls back to the default of 20, so use an explicit small value.
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   5,
		Window: time.Minute,
		Burst:  1,
	})
	defer rl.Stop()

	addr := "203.0.113.7:52100"
	for i := 0; i < 6; i++ {
		allowed, _, _ := rl.Allow(addr)
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, remaining, _ := rl.Allow(addr)
	if allowed {
		t.Error("request past rate+burst should be denied")
	}
	if remaining != 0 {
		t.Errorf("expected remaining 0, got %d", remaining)
	}
}

func TestAllow_DifferentClients_SeparateBuckets(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   5,
		Window: time.Minute,
		Burst:  1,
	})
	defer rl.Stop()

	for i := 0; i < 6; i++ {
		rl.Allow("203.0.113.7:52100")
	}
	if allowed, _, _ := rl.Allow("203.0.113.7:52100"); allowed {
		t.Error("exhausted client should be denied")
	}

	allowed, remaining, _ := rl.Allow("198.51.100.4:40000")
	if !allowed {
		t.Error("a different client address gets its own bucket")
	}
	if remaining != 5 {
		t.Errorf("expected remaining 5 for fresh bucket, got %d", remaining)
	}
}

func TestAllow_FullRefill_AfterWindow(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   5,
		Window: 50 * time.Millisecond,
		Burst:  1,
	})
	defer rl.Stop()

	addr := "203.0.113.7:52100"
	for i := 0; i < 6; i++ {
		rl.Allow(addr)
	}
	if allowed, _, _ := rl.Allow(addr); allowed {
		t.Error("should be denied when exhausted")
	}

	time.Sleep(60 * time.Millisecond)

	allowed, remaining, _ := rl.Allow(addr)
	if !allowed {
		t.Error("should be allowed after the window refills the bucket")
	}
	if remaining != 5 {
		t.Errorf("expected remaining 5 after refill, got %d", remaining)
	}
}

func TestAllow_PartialRefill_BeforeWindow(t *testing.T) {
	t.Parallel()
	// Rate of 100 per 100ms: roughly one token per millisecond.
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   100,
		Window: 100 * time.Millisecond,
		Burst:  1,
	})
	defer rl.Stop()

	addr := "203.0.113.7:52100"
	for i := 0; i < 50; i++ {
		rl.Allow(addr)
	}

	time.Sleep(30 * time.Millisecond)

	allowed, remaining, _ := rl.Allow(addr)
	if !allowed {
		t.Error("should be allowed with partial refill")
	}
	if remaining < 0 {
		t.Errorf("remaining should never go negative, got %d", remaining)
	}
}

func TestAllow_TokensCapped_AtRatePlusBurst(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   10,
		Window: 50 * time.Millisecond,
		Burst:  5,
	})
	defer rl.Stop()

	addr := "203.0.113.7:52100"
	rl.Allow(addr)

	// Several idle windows must not accumulate beyond the cap.
	time.Sleep(200 * time.Millisecond)

	_, remaining, _ := rl.Allow(addr)
	if remaining > 14 {
		t.Errorf("remaining should be capped at 14, got %d", remaining)
	}
}

func TestAllow_ReturnsResetTime(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   10,
		Window: time.Minute,
	})
	defer rl.Stop()

	before := time.Now()
	_, _, resetTime := rl.Allow("203.0.113.7:52100")
	after := time.Now()

	expectedReset := before.Add(time.Minute)
	if resetTime.Before(expectedReset.Add(-time.Second)) || resetTime.After(after.Add(time.Minute).Add(time.Second)) {
		t.Errorf("reset time %v not in expected range around %v", resetTime, expectedReset)
	}
}

func TestAllow_ConcurrentClients_ThreadSafe(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   1000,
		Window: time.Minute,
		Burst:  100,
	})
	defer rl.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			addr := "203.0.113." + strconv.Itoa(workerID) + ":52100"
			for j := 0; j < 100; j++ {
				rl.Allow(addr)
				rl.Allow("shared-address:1")
			}
		}(i)
	}
	wg.Wait()
}

// ============================================================================
// Cleanup Tests
// ============================================================================

func TestCleanup_RemovesExpiredBuckets(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:    10,
		Window:  50 * time.Millisecond,
		Cleanup: 10 * time.Millisecond,
	})
	defer rl.Stop()

	addr := "203.0.113.7:52100"
	rl.Allow(addr)

	rl.mu.Lock()
	_, exists := rl.buckets[addr]
	rl.mu.Unlock()
	if !exists {
		t.Fatal("bucket should exist after request")
	}

	// Buckets idle for more than two windows are dropped.
	time.Sleep(150 * time.Millisecond)

	rl.mu.Lock()
	_, exists = rl.buckets[addr]
	rl.mu.Unlock()
	if exists {
		t.Error("expired bucket should have been cleaned up")
	}
}

func TestCleanup_KeepsFreshBuckets(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:    10,
		Window:  time.Minute,
		Cleanup: 10 * time.Millisecond,
	})
	defer rl.Stop()

	addr := "203.0.113.7:52100"
	rl.Allow(addr)

	time.Sleep(50 * time.Millisecond)

	rl.mu.Lock()
	_, exists := rl.buckets[addr]
	rl.mu.Unlock()
	if !exists {
		t.Error("fresh bucket should not be cleaned up")
	}
}

func TestStop_StopsCleanupGoroutine(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{})

	// Must not panic or hang.
	rl.Stop()
}

// ============================================================================
// RateLimit Middleware Tests
// ============================================================================

func TestRateLimitMiddleware_AllowedRequest_SetsHeaders(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   100,
		Window: time.Minute,
		Burst:  20,
	})
	defer rl.Stop()

	middleware := RateLimit(rl)
	handler := &captureHandler{}

	req := httptest.NewRequest(http.MethodPost, "/v1/compare", nil)
	req.RemoteAddr = "203.0.113.7:52100"
	rr := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if !handler.called {
		t.Error("handler should have been called")
	}
	if rr.Header().Get("X-RateLimit-Limit") != "100" {
		t.Errorf("expected X-RateLimit-Limit '100', got %q", rr.Header().Get("X-RateLimit-Limit"))
	}
	if rr.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("expected X-RateLimit-Remaining header")
	}
	if rr.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("expected X-RateLimit-Reset header")
	}
}

func TestRateLimitMiddleware_DeniedRequest_Returns429(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   2,
		Window: time.Minute,
		Burst:  1,
	})
	defer rl.Stop()

	middleware := RateLimit(rl)
	handler := &captureHandler{}

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/surveys", nil)
		req.RemoteAddr = "203.0.113.7:52100"
		rr := httptest.NewRecorder()
		middleware(handler).ServeHTTP(rr, req)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/v1/surveys", nil)
	req2.RemoteAddr = "203.0.113.7:52100"
	rr2 := httptest.NewRecorder()
	handler.called = false
	middleware(handler).ServeHTTP(rr2, req2)

	if rr2.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rr2.Code)
	}
	if handler.called {
		t.Error("handler should not have been called")
	}
	if rr2.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRateLimitMiddleware_KeyedByClientAddress(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   2,
		Window: time.Minute,
		Burst:  1,
	})
	defer rl.Stop()

	middleware := RateLimit(rl)
	handler := &captureHandler{}

	req := httptest.NewRequest(http.MethodGet, "/v1/surveys/abc", nil)
	req.RemoteAddr = "203.0.113.7:52100"

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		middleware(handler).ServeHTTP(rr, req)
	}

	rr := httptest.NewRecorder()
	middleware(handler).ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rr.Code)
	}

	// A different client address still has quota.
	req2 := httptest.NewRequest(http.MethodGet, "/v1/surveys/abc", nil)
	req2.RemoteAddr = "198.51.100.4:40000"

	rr2 := httptest.NewRecorder()
	handler.called = false
	middleware(handler).ServeHTTP(rr2, req2)

	if rr2.Code != http.StatusOK {
		t.Errorf("expected status 200 for different address, got %d", rr2.Code)
	}
}

func TestRateLimitMiddleware_RetryAfter_MinimumOne(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   1,
		Window: time.Millisecond,
		Burst:  1,
	})
	defer rl.Stop()

	middleware := RateLimit(rl)
	handler := &captureHandler{}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.7:52100"

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		middleware(handler).ServeHTTP(rr, req)
	}

	rr2 := httptest.NewRecorder()
	middleware(handler).ServeHTTP(rr2, req)

	if rr2.Code == http.StatusTooManyRequests {
		retryAfter := rr2.Header().Get("Retry-After")
		if retryAfter != "" {
			val, err := strconv.Atoi(retryAfter)
			if err == nil && val < 1 {
				t.Errorf("Retry-After should be at least 1, got %d", val)
			}
		}
	}
}
