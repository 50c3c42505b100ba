package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestLoggerPassThrough(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()

	RequestLogger(inner).ServeHTTP(resp, req)

	if resp.Code != http.StatusTeapot {
		t.Fatalf("expected wrapped status to pass through, got %d", resp.Code)
	}
	if resp.Body.String() != "ok" {
		t.Fatalf("expected body to pass through, got %q", resp.Body.String())
	}
}
