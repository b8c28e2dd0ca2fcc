package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voxa/internal/config"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready 就绪检查
// 两个网关的凭证都配置后才算就绪
func (h *HealthHandler) Ready(c *gin.Context) {
	llmReady := h.cfg.LLM.APIKey != ""
	ttsReady := h.cfg.TTS.APIKey != ""

	status, code := "ready", http.StatusOK
	if !llmReady || !ttsReady {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"llm":    llmReady,
		"tts":    ttsReady,
	})
}
