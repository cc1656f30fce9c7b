package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTokenService struct {
	adapter.TokenService
	valid  string
	claims *adapter.TokenClaims
}

func (f *fakeTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != f.valid {
		return nil, errors.New("bad token")
	}
	return f.claims, nil
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	svc := &fakeTokenService{
		valid:  "good",
		claims: &adapter.TokenClaims{UserID: userID, Username: "alice"},
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/me", NewAuthMiddleware(svc).Authenticate(), func(c *gin.Context) {
				id, ok := GetUserIDFromContext(c)
				name, _ := GetUsernameFromContext(c)
				if !ok || id != userID || name != "alice" {
					t.Errorf("identity not propagated: %v %q", id, name)
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func newLimitedEngine(rl *RateLimiter) *gin.Engine {
	engine := gin.New()
	engine.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func hit(engine *gin.Engine) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_MemoryStore(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	engine := newLimitedEngine(NewRateLimiterWithConfig(store, "login", 2, time.Minute))

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		if got := hit(engine); got != want {
			t.Fatalf("attempt %d: expected %d, got %d", i+1, want, got)
		}
	}

	now = now.Add(2 * time.Minute)
	if got := hit(engine); got != http.StatusOK {
		t.Errorf("expected window to reset, got %d", got)
	}

	store.Cleanup()
	if len(store.entries) != 1 {
		t.Errorf("expected the live entry to survive cleanup, got %d entries", len(store.entries))
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiterWithConfig(NewMemoryStore(), "login", 1, time.Minute)
	rl.SetEnabled(false)
	engine := newLimitedEngine(rl)

	for i := 0; i < 3; i++ {
		if got := hit(engine); got != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, got)
		}
	}
}

func TestRateLimiter_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiterWithConfig(NewRedisStore(client, "ratelimit:"), "login", 2, time.Minute)
	engine := newLimitedEngine(rl)

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		if got := hit(engine); got != want {
			t.Fatalf("attempt %d: expected %d, got %d", i+1, want, got)
		}
	}

	if ttl := mr.TTL("ratelimit:login:10.0.0.1"); ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected a window ttl, got %s", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if got := hit(engine); got != http.StatusOK {
		t.Errorf("expected window to expire, got %d", got)
	}

	if err := rl.Reset(context.Background()); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if mr.Exists("ratelimit:login:10.0.0.1") {
		t.Error("expected reset to remove the counter")
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	engine := newLimitedEngine(NewRateLimiterWithConfig(NewRedisStore(client, "ratelimit:"), "login", 1, time.Minute))
	for i := 0; i < 3; i++ {
		if got := hit(engine); got != http.StatusOK {
			t.Fatalf("attempt %d: expected 200 while redis is down, got %d", i+1, got)
		}
	}
}

func TestErrorDetails(t *testing.T) {
	for _, expose := range []bool{true, false} {
		engine := gin.New()
		var seen bool
		engine.GET("/", ErrorDetails(expose), func(c *gin.Context) {
			seen = ShouldExposeErrorDetails(c)
			c.Status(http.StatusOK)
		})
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		if seen != expose {
			t.Errorf("expected %v, got %v", expose, seen)
		}
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestLogger())
	engine.GET("/teapot", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", rec.Code)
	}
}
