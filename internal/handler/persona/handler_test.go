package persona

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	personaModel "github.com/birdiland/backend/internal/model/persona"
)

func setupRouter() *chi.Mux {
	handler := New(personaModel.NewMemoryStore(personaModel.Seed()), "canary")

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestDefaultProfile(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var p personaModel.Persona
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if p.ID != "canary" || p.Name != "Canary" {
		t.Fatalf("unexpected default profile: %+v", p)
	}
}

func TestAgentProfileByID(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/agent/snow_fairy/profile", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var p personaModel.Persona
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if p.Name != "Snow Fairy" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestAgentProfileUnknown(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/agent/unknown/profile", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestAgentList(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/agent/list", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var summaries []personaModel.Summary
	if err := json.Unmarshal(resp.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.ID == "" || s.Name == "" || s.Description == "" {
			t.Fatalf("incomplete summary: %+v", s)
		}
	}
}
