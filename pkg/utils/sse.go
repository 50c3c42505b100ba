package utils

import (
	"encoding/json"
	"net/http"

	logx "github.com/birdiland/backend/pkg/logger"
)

// SetupSSEHeaders 设置Server-Sent Events响应头
func SetupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// SendSSEChunk 发送一条 data: 帧并立即刷新
func SendSSEChunk(w http.ResponseWriter, flusher http.Flusher, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logx.Error().Err(err).Msg("failed to marshal sse payload")
		return
	}

	if _, err := w.Write([]byte("data: ")); err != nil {
		logx.Error().Err(err).Msg("failed to write sse prefix")
		return
	}
	if _, err := w.Write(data); err != nil {
		logx.Error().Err(err).Msg("failed to write sse payload")
		return
	}
	if _, err := w.Write([]byte("\n\n")); err != nil {
		logx.Error().Err(err).Msg("failed to write sse terminator")
		return
	}
	flusher.Flush()
}

// SendSSERaw 发送未经JSON编码的原始帧，用于 [DONE] 之类的结束哨兵。
func SendSSERaw(w http.ResponseWriter, flusher http.Flusher, raw string) {
	if _, err := w.Write([]byte("data: " + raw + "\n\n")); err != nil {
		logx.Error().Err(err).Msg("failed to write sse sentinel")
		return
	}
	flusher.Flush()
}
