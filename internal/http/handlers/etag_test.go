package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEtagMatches(t *testing.T) {
	const tag = `"abc"`

	tests := []struct {
		header string
		want   bool
	}{
		{header: "", want: false},
		{header: `"abc"`, want: true},
		{header: `W/"abc"`, want: true},
		{header: `"zzz", "abc"`, want: true},
		{header: `"zzz"`, want: false},
		{header: "*", want: true},
	}

	for _, tt := range tests {
		if got := etagMatches(tt.header, tag); got != tt.want {
			t.Errorf("etagMatches(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestEtagForStable(t *testing.T) {
	a := etagFor([]byte(`{"name":"Ann"}`))
	b := etagFor([]byte(`{"name":"Ann"}`))
	c := etagFor([]byte(`{"name":"Bob"}`))

	if a != b {
		t.Fatalf("same body gave different etags: %s %s", a, b)
	}
	if a == c {
		t.Fatalf("different bodies share an etag")
	}
}

func TestRespondJSONWithETag_PrivateAndGETOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handler := func(c *gin.Context) { RespondJSONWithETag(c, http.StatusOK, gin.H{"title": "Buy milk"}) }
	r.GET("/x", handler)
	r.PUT("/x", handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	tag := w.Header().Get("ETag")
	if w.Code != http.StatusOK || tag == "" {
		t.Fatalf("got %d etag=%q", w.Code, tag)
	}
	if got := w.Header().Get("Cache-Control"); got != "private, no-cache" {
		t.Fatalf("Cache-Control = %q", got)
	}

	req := httptest.NewRequest(http.MethodPut, "/x", nil)
	req.Header.Set("If-None-Match", tag)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("PUT with matching tag got %d, want 200 with body", w.Code)
	}
}
