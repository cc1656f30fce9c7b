package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// RateLimitStore counts attempts per key inside a fixed window.
type RateLimitStore interface {
	// Increment records one attempt and returns the count in the current window.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	// Reset clears every counter.
	Reset(ctx context.Context) error
}

// RateLimiter provides IP-based rate limiting functionality.
type RateLimiter struct {
	store       RateLimitStore
	prefix      string
	maxAttempts int
	window      time.Duration
	enabled     bool
}

// NewRateLimiter creates a rate limiter with default settings backed by memory.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(NewMemoryStore(), "login", defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a rate limiter with custom settings.
// Non-positive limits fall back to the defaults.
func NewRateLimiterWithConfig(store RateLimitStore, prefix string, maxAttempts int, window time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindowDuration
	}
	return &RateLimiter{
		store:       store,
		prefix:      prefix,
		maxAttempts: maxAttempts,
		window:      window,
		enabled:     true,
	}
}

// SetEnabled toggles enforcement; a disabled limiter lets every request through.
func (rl *RateLimiter) SetEnabled(enabled bool) {
	rl.enabled = enabled
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.allow(c.Request.Context(), clientIP) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// allow fails open when the store is unreachable.
func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	count, err := rl.store.Increment(ctx, rl.prefix+":"+key, rl.window)
	if err != nil {
		slog.WarnContext(ctx, "rate limit store unavailable", "error", err)
		return true
	}
	return count <= int64(rl.maxAttempts)
}

// Reset clears the rate limiter state.
func (rl *RateLimiter) Reset(ctx context.Context) error {
	return rl.store.Reset(ctx)
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int64
	resetTime time.Time
}

// MemoryStore keeps counters in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// Increment implements RateLimitStore.
func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		s.entries[key] = &rateLimitEntry{attempts: 1, resetTime: now.Add(window)}
		return 1, nil
	}
	entry.attempts++
	return entry.attempts, nil
}

// Reset implements RateLimitStore.
func (s *MemoryStore) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*rateLimitEntry)
	return nil
}

// Cleanup removes expired entries.
func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}
