package facturation

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// RateLimitHeader carries the number of calls left in the provider's window
	RateLimitHeader = "X-Ratelimit-Remaining"
	// DefaultRateLimitBudget is the provider's per-window request allowance
	DefaultRateLimitBudget = 600
	// DefaultRateLimitWindow is the provider's fixed rate-limit window
	DefaultRateLimitWindow = 60 * time.Second
)

// RateLimiter tracks the provider's rate-limit budget from response headers.
// It is advisory: nothing in the client blocks on it.
type RateLimiter struct {
	mu            sync.Mutex
	budget        int
	window        time.Duration
	remaining     int
	lastRequestAt time.Time
	timer         *time.Timer
	now           func() time.Time
	logger        zerolog.Logger
}

// NewRateLimiter creates a tracker starting with a full budget.
func NewRateLimiter(budget int, window time.Duration, logger zerolog.Logger) *RateLimiter {
	if budget <= 0 {
		budget = DefaultRateLimitBudget
	}
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	return &RateLimiter{
		budget:    budget,
		window:    window,
		remaining: budget,
		now:       time.Now,
		logger:    logger,
	}
}

// Observe records a response. The remaining count is taken from the header
// when present, and a reset is armed for the end of the window.
func (r *RateLimiter) Observe(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if raw := resp.Header.Get(RateLimitHeader); raw != "" {
		remaining, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			r.logger.Debug().Str("value", raw).Msg("Ignoring malformed rate-limit header")
		} else {
			r.remaining = remaining
		}
	}

	r.lastRequestAt = r.now()
	r.armLocked()
}

// armLocked replaces any pending reset with one due a full window from now.
func (r *RateLimiter) armLocked() {
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.window, r.resetIfIdle)
}

// resetIfIdle restores the budget when no request was seen during the last window.
func (r *RateLimiter) resetIfIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastRequestAt.IsZero() || r.now().Sub(r.lastRequestAt) < r.window {
		return
	}

	if r.remaining != r.budget {
		r.logger.Debug().
			Int("remaining", r.remaining).
			Int("budget", r.budget).
			Msg("Rate-limit window elapsed, restoring budget")
	}
	r.remaining = r.budget
	r.timer = nil
}

// CheckRateLimit reports whether at least n more requests fit in the tracked budget.
func (r *RateLimiter) CheckRateLimit(n int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining >= n
}

// Remaining returns the last known number of calls left.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// LastRequestAt returns when the last response was observed.
func (r *RateLimiter) LastRequestAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRequestAt
}

// Stop cancels any pending reset.
func (r *RateLimiter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
