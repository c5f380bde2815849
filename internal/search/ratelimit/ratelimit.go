package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Limiter is a per-key token bucket. Each bucket holds up to burst tokens and
// refills continuously at burst tokens per window.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	burst   float64
	perSec  float64
	window  time.Duration
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// New creates a Limiter allowing rate requests per window for each key.
func New(rate int, window time.Duration) *Limiter {
	return newLimiter(rate, window, time.Now)
}

func newLimiter(rate int, window time.Duration, now func() time.Time) *Limiter {
	burst := math.Max(float64(rate), 0)
	var perSec float64
	if window > 0 {
		perSec = burst / window.Seconds()
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		burst:   burst,
		perSec:  perSec,
		window:  window,
		now:     now,
		done:    make(chan struct{}),
	}

	go l.cleanup()

	return l
}

// Close stops the background cleanup goroutine.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.done) })
}

// Allow reports whether key may proceed and consumes a token if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, lastSeen: now}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.lastSeen); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+elapsed.Seconds()*l.perSec)
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// RetryAfter estimates how long key must wait for its next token.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || b.tokens >= 1 || l.perSec == 0 {
		return 0
	}
	return time.Duration((1 - b.tokens) / l.perSec * float64(time.Second))
}

// cleanup periodically drops buckets that have refilled completely.
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for key, b := range l.buckets {
				if now.Sub(b.lastSeen) > 2*l.window {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}
