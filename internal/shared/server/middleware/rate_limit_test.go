package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(now *time.Time, rules map[string]RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(func() time.Time { return *now })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(userIDKey, "guest:test-guest")
		c.Next()
	})
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: func(c *gin.Context) string {
			if strings.HasSuffix(c.FullPath(), "/pdf") {
				return ExportRateLimitGroup
			}
			return ""
		},
		Limiter: limiter,
		Rules:   rules,
	}))
	r.GET("/api/v1/users/resumes/:id/pdf", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/v1/users/resumes/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestRateLimitExportGroupIsStricter(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := limitedRouter(&now, map[string]RateLimitRule{
		DefaultRateLimitGroup: {Rate: 5, Burst: 10},
		ExportRateLimitGroup:  PerMinute(2),
	})

	for i := 0; i < 2; i++ {
		if resp := get(r, "/api/v1/users/resumes/r1/pdf"); resp.Code != http.StatusOK {
			t.Fatalf("export %d expected 200, got %d", i+1, resp.Code)
		}
	}
	if resp := get(r, "/api/v1/users/resumes/r1/pdf"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("third export expected 429, got %d", resp.Code)
	}
	for i := 0; i < 5; i++ {
		if resp := get(r, "/api/v1/users/resumes/r1"); resp.Code != http.StatusOK {
			t.Fatalf("read %d expected 200, got %d", i+1, resp.Code)
		}
	}

	now = now.Add(30 * time.Second)
	if resp := get(r, "/api/v1/users/resumes/r1/pdf"); resp.Code != http.StatusOK {
		t.Fatalf("export after refill expected 200, got %d", resp.Code)
	}
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := limitedRouter(&now, map[string]RateLimitRule{
		DefaultRateLimitGroup: {Rate: 1, Burst: 1},
	})

	if resp := get(r, "/api/v1/users/resumes/r1"); resp.Code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp.Code)
	}
	resp := get(r, "/api/v1/users/resumes/r1")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", resp.Header().Get("Retry-After"))
	}

	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "rate_limited" {
		t.Fatalf("expected rate_limited, got %q", payload.Error.Code)
	}
	if _, ok := payload.Error.Details["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in details")
	}
}

func TestRateLimitUnknownGroupIsUnlimited(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := limitedRouter(&now, map[string]RateLimitRule{
		ExportRateLimitGroup: PerMinute(1),
	})
	for i := 0; i < 20; i++ {
		if resp := get(r, "/api/v1/users/resumes/r1"); resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}
}
