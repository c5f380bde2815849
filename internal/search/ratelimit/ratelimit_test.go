package ratelimit

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestLimiter_Allow(t *testing.T) {
	tests := []struct {
		name       string
		rate       int
		key        string
		calls      int
		wantPassed int
	}{
		{name: "all requests within limit", rate: 5, key: "10.0.0.1", calls: 5, wantPassed: 5},
		{name: "exceed rate limit", rate: 3, key: "10.0.0.2", calls: 5, wantPassed: 3},
		{name: "single request", rate: 10, key: "10.0.0.3", calls: 1, wantPassed: 1},
		{name: "zero rate blocks all", rate: 0, key: "10.0.0.4", calls: 3, wantPassed: 0},
		{name: "empty key", rate: 2, key: "", calls: 3, wantPassed: 2},
		{name: "negative rate blocks all", rate: -5, key: "10.0.0.5", calls: 3, wantPassed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)}
			l := newLimiter(tt.rate, time.Minute, clock.Now)
			defer l.Close()

			passed := 0
			for range tt.calls {
				if l.Allow(tt.key) {
					passed++
				}
			}

			if passed != tt.wantPassed {
				t.Errorf("Allow() passed %d requests, want %d", passed, tt.wantPassed)
			}
		})
	}
}

func TestLimiter_Refill(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)}
	l := newLimiter(60, time.Minute, clock.Now)
	defer l.Close()

	key := "10.0.0.1"
	for range 60 {
		if !l.Allow(key) {
			t.Fatal("burst should be allowed")
		}
	}
	if l.Allow(key) {
		t.Fatal("request beyond burst should be blocked")
	}
	if got := l.RetryAfter(key); got <= 0 || got > time.Second {
		t.Errorf("RetryAfter() = %v, want (0, 1s]", got)
	}

	// One token per second.
	clock.Advance(500 * time.Millisecond)
	if l.Allow(key) {
		t.Error("half a token should not be enough")
	}
	clock.Advance(500 * time.Millisecond)
	if !l.Allow(key) {
		t.Error("a full token should have refilled")
	}

	// Refill is capped at the burst size.
	clock.Advance(time.Hour)
	passed := 0
	for range 100 {
		if l.Allow(key) {
			passed++
		}
	}
	if passed != 60 {
		t.Errorf("after long idle passed %d, want 60", passed)
	}
}

func TestLimiter_Allow_MultipleKeys(t *testing.T) {
	l := New(2, time.Minute)
	defer l.Close()

	tests := []struct {
		key        string
		wantPassed int
	}{
		{key: "10.0.0.1", wantPassed: 2},
		{key: "10.0.0.2", wantPassed: 2},
		{key: "10.0.0.3", wantPassed: 2},
	}

	for _, tt := range tests {
		passed := 0
		for range 3 {
			if l.Allow(tt.key) {
				passed++
			}
		}
		if passed != tt.wantPassed {
			t.Errorf("key %s: passed %d requests, want %d", tt.key, passed, tt.wantPassed)
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)}
	l := newLimiter(100, time.Minute, clock.Now)
	defer l.Close()

	start := make(chan struct{})
	results := make(chan bool, 200)

	for range 200 {
		go func() {
			<-start
			results <- l.Allow("10.0.0.1")
		}()
	}

	close(start)

	count := 0
	for range 200 {
		if <-results {
			count++
		}
	}

	if count != 100 {
		t.Errorf("concurrent test: %d requests passed, want 100", count)
	}
}
