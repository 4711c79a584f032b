package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestIDMiddleware())

	var seen string
	engine.GET("/ping", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatal("Expected request_id to be set in context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("Generated request id %q is not a UUID: %v", seen, err)
	}
	if got := rec.Header().Get("X-Request-Id"); got != seen {
		t.Errorf("Response header X-Request-Id = %q, want %q", got, seen)
	}
}

func TestRequestIDPassedThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "deck-test-123")
	engine.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "deck-test-123" {
		t.Errorf("Response header X-Request-Id = %q, want passthrough", got)
	}
}
