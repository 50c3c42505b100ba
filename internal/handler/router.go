package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/birdiland/backend/internal/handler/chat"
	personaHandler "github.com/birdiland/backend/internal/handler/persona"
	"github.com/birdiland/backend/internal/middleware"

	"github.com/birdiland/backend/internal/config"
	personaModel "github.com/birdiland/backend/internal/model/persona"
	agentService "github.com/birdiland/backend/internal/service/agent"
	"github.com/birdiland/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(cfg *config.Config, personas personaModel.Store, agentSvc *agentService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handleHealth)

		personaHandler.New(personas, cfg.Chat.DefaultAgentID).RegisterRoutes(api)
		chatHandler.New(agentSvc, cfg.Chat).RegisterRoutes(api)
	})

	return r
}

// handleHealth 健康检查
func handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "Birdiland API",
	})
}
