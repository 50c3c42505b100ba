package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/birdiland/backend/internal/config"
	"github.com/birdiland/backend/internal/errx"
	agentService "github.com/birdiland/backend/internal/service/agent"
	logx "github.com/birdiland/backend/pkg/logger"
	"github.com/birdiland/backend/pkg/utils"
)

// doneSentinel terminates every SSE stream after the final fragment.
const doneSentinel = "[DONE]"

// Handler 聊天服务的HTTP处理器
type Handler struct {
	agentSvc *agentService.Service
	cfg      config.ChatConfig
}

// New 创建聊天处理器
func New(agentSvc *agentService.Service, cfg config.ChatConfig) *Handler {
	return &Handler{
		agentSvc: agentSvc,
		cfg:      cfg,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Delete("/chat/history", h.handleClearHistory)
}

// chatRequest 聊天请求
type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	AgentID string `json:"agent_id"`
	Stream  bool   `json:"stream"`
}

// chatResponse 聊天响应
type chatResponse struct {
	Response string `json:"response"`
	Emotion  string `json:"emotion"`
}

// streamChunk 流式响应片段
type streamChunk struct {
	Content string `json:"content"`
	Emotion string `json:"emotion"`
	IsFinal bool   `json:"is_final"`
}

// handleChat 与数字人聊天，根据请求的stream标志选择JSON或SSE响应
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if payload.UserID == "" {
		payload.UserID = h.cfg.DefaultUserID
	}
	if payload.AgentID == "" {
		payload.AgentID = h.cfg.DefaultAgentID
	}

	if payload.Stream {
		h.streamChat(w, r, payload)
		return
	}

	reply, err := h.agentSvc.Converse(r.Context(), payload.AgentID, payload.UserID, payload.Message)
	if err != nil {
		h.respondChatError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{
		Response: reply.Text,
		Emotion:  string(reply.Emotion),
	})
}

// streamChat 以SSE推送流式回复
func (h *Handler) streamChat(w http.ResponseWriter, r *http.Request, payload chatRequest) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	fragments, err := h.agentSvc.ConverseStream(r.Context(), payload.AgentID, payload.UserID, payload.Message)
	if err != nil {
		h.respondChatError(w, err)
		return
	}

	utils.SetupSSEHeaders(w)

	for fragment := range fragments {
		utils.SendSSEChunk(w, flusher, streamChunk{
			Content: fragment.Content,
			Emotion: string(fragment.Emotion),
			IsFinal: fragment.Final,
		})
	}

	utils.SendSSERaw(w, flusher, doneSentinel)
}

// handleClearHistory 清除指定会话的对话历史
func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	agentID := r.URL.Query().Get("agent_id")
	if agentID == "" {
		agentID = h.cfg.DefaultAgentID
	}
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = h.cfg.DefaultUserID
	}

	if err := h.agentSvc.ClearHistory(r.Context(), agentID, userID); err != nil {
		h.respondChatError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) respondChatError(w http.ResponseWriter, err error) {
	if errors.Is(err, errx.ErrPersonaNotFound) {
		utils.RespondError(w, http.StatusNotFound, errx.PersonaNotFoundMessage)
		return
	}

	logx.Error().Err(err).Msg("chat request failed")
	utils.RespondError(w, errx.StatusOf(err), errx.SystemErrorMessage)
}
