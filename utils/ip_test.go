package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIP(t *testing.T) {
	t.Run("prefers X-Forwarded-For first hop", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		r.RemoteAddr = "10.0.0.2:4711"
		assert.Equal(t, "203.0.113.7", ExtractIP(r))
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Real-IP", "203.0.113.8")
		r.RemoteAddr = "10.0.0.2:4711"
		assert.Equal(t, "203.0.113.8", ExtractIP(r))
	})

	t.Run("falls back to RemoteAddr without port", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.2:4711"
		assert.Equal(t, "10.0.0.2", ExtractIP(r))
	})
}

func TestPathSegment(t *testing.T) {
	assert.Equal(t, "abc", PathSegment("/track/abc", "/track/"))
	assert.Equal(t, "abc", PathSegment("/track/abc/", "/track/"))
	assert.Equal(t, "abc", PathSegment("/track/abc?x=1", "/track/"))
	assert.Equal(t, "abc", PathSegment("/api/links/abc/destination", "/api/links/"))
	assert.Equal(t, "", PathSegment("/track/", "/track/"))
}
