package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/strettonotes/strettonotes/internal/http/middlewares"
)

// exercises the in-memory fallback used when no redis client is wired in
func TestLoginLimiterMemoryFallback(t *testing.T) {
	limiter := middlewares.NewLoginLimiter(nil, 3, time.Minute)

	r := gin.New()
	r.POST("/auth/token", limiter.Middleware(middlewares.KeyByIP), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
		req.RemoteAddr = "10.0.0.1:12345"

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 3; i++ {
		if w := send(); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}

	w := send()

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("over-limit status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}

	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header on rate-limited response")
	}
}

func TestLoginLimiterKeysAreIndependent(t *testing.T) {
	limiter := middlewares.NewLoginLimiter(nil, 1, time.Minute)

	r := gin.New()
	r.POST("/auth/token", limiter.Middleware(middlewares.KeyByIP), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
		req.RemoteAddr = addr

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := send("10.0.0.1:1"); w.Code != http.StatusOK {
		t.Fatalf("first client first request: status = %d", w.Code)
	}

	if w := send("10.0.0.1:1"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("first client second request: status = %d, want 429", w.Code)
	}

	// a different client must not be affected
	if w := send("10.0.0.2:1"); w.Code != http.StatusOK {
		t.Fatalf("second client: status = %d, want 200", w.Code)
	}
}
