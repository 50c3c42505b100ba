package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/birdiland/backend/internal/config"
	"github.com/birdiland/backend/internal/handler"
	"github.com/birdiland/backend/internal/model/persona"
	"github.com/birdiland/backend/internal/service/agent"
	"github.com/birdiland/backend/internal/service/session"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Chat: config.ChatConfig{HistoryLimit: 10, DefaultAgentID: "canary", DefaultUserID: "default"},
	}

	personas := persona.NewMemoryStore(persona.Seed())
	agentSvc, err := agent.NewService(context.Background(), personas, session.NewMemoryStore(cfg.Chat.HistoryLimit), nil)
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}

	return handler.NewRouter(cfg, personas, agentSvc)
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected origin to be allowed, got %q", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}
}
