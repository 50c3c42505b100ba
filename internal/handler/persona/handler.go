package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/birdiland/backend/internal/model/persona"
	"github.com/birdiland/backend/pkg/utils"
)

// Handler persona服务的HTTP处理器
type Handler struct {
	personas       persona.Store
	defaultAgentID string
}

// New 创建persona处理器
func New(personas persona.Store, defaultAgentID string) *Handler {
	return &Handler{
		personas:       personas,
		defaultAgentID: defaultAgentID,
	}
}

// RegisterRoutes 注册persona相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.handleDefaultProfile)
	r.Get("/agent/list", h.handleListAgents)
	r.Get("/agent/{agentID}/profile", h.handleAgentProfile)
}

// handleDefaultProfile 返回默认agent的个人资料（向后兼容）
func (h *Handler) handleDefaultProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := h.personas.FindByID(h.defaultAgentID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "persona not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// handleListAgents 列出所有可用的agent
func (h *Handler) handleListAgents(w http.ResponseWriter, r *http.Request) {
	personas := h.personas.List()
	summaries := make([]persona.Summary, 0, len(personas))
	for _, p := range personas {
		summaries = append(summaries, p.Summarize())
	}
	utils.RespondJSON(w, http.StatusOK, summaries)
}

// handleAgentProfile 获取指定agent的个人资料
func (h *Handler) handleAgentProfile(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentID")
	p, ok := h.personas.FindByID(agentID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "persona not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}
