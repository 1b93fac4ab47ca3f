package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterWindow(t *testing.T) {
	var mu sync.Mutex
	current := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(2, time.Minute, "test-window", func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.allow("u1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	ok, reset := limiter.allow("u1")
	if ok {
		t.Fatal("third request should be limited")
	}
	if reset != time.Minute {
		t.Errorf("reset = %v, want 1m", reset)
	}
	if ok, _ := limiter.allow("u2"); !ok {
		t.Error("other keys have their own budget")
	}

	mu.Lock()
	current = current.Add(time.Minute)
	mu.Unlock()
	if ok, _ := limiter.allow("u1"); !ok {
		t.Error("a new window should reset the count")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(1, time.Minute, "test-mw")
	defer limiter.Stop()

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "u1"); c.Next() })
	r.Use(rateLimitMiddleware(limiter))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first status = %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "1" {
		t.Errorf("X-RateLimit-Limit = %q, want 1", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", w.Code)
	}
	if got, _ := strconv.Atoi(w.Header().Get("Retry-After")); got <= 0 || got > 60 {
		t.Errorf("Retry-After = %q", w.Header().Get("Retry-After"))
	}
}

// Run with -race.
func TestRateLimiterConcurrentAccess(t *testing.T) {
	limiter := NewRateLimiter(100, 50*time.Millisecond, "test-concurrent")
	defer limiter.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				key := "user:shared"
				if j%3 == 0 {
					key = "10.0.0." + strconv.Itoa(id%10)
				}
				limiter.allow(key)
				if j%10 == 0 {
					time.Sleep(time.Millisecond)
				}
			}
		}(i)
	}
	wg.Wait()
}
