package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"voxa/internal/config"
	"voxa/internal/pkg/netproxy"
)

// DebugHandler 诊断处理器
// 只报告凭证是否存在，不回显密钥
type DebugHandler struct {
	cfg *config.Config
}

// NewDebugHandler 创建诊断处理器
func NewDebugHandler(cfg *config.Config) *DebugHandler {
	return &DebugHandler{cfg: cfg}
}

// DebugEnvResponse 诊断信息
type DebugEnvResponse struct {
	LLMProvider  string `json:"llmProvider"`
	LLMAPIKeySet bool   `json:"llmApiKeySet"`
	LLMAPIKey    string `json:"llmApiKey"` // 掩码
	LLMModel     string `json:"llmModel"`
	TTSProvider  string `json:"ttsProvider"`
	TTSAPIKeySet bool   `json:"ttsApiKeySet"`
	TTSAPIKey    string `json:"ttsApiKey"` // 掩码
	TTSVoiceID   string `json:"ttsVoiceId"`
	Proxy        string `json:"proxy"` // 隐去密码
	Cwd          string `json:"cwd"`
}

// DebugEnv 诊断接口
// @Summary      配置诊断
// @Description  返回凭证是否配置及模型、音色等非敏感配置。仅在 debug.enabled 时注册。
// @Tags         debug
// @Produce      json
// @Success      200  {object}  DebugEnvResponse
// @Router       /api/debug-env [get]
func (h *DebugHandler) DebugEnv(c *gin.Context) {
	cwd, _ := os.Getwd()

	c.JSON(http.StatusOK, DebugEnvResponse{
		LLMProvider:  h.cfg.LLM.Provider,
		LLMAPIKeySet: h.cfg.LLM.APIKey != "",
		LLMAPIKey:    maskSecret(h.cfg.LLM.APIKey),
		LLMModel:     h.cfg.LLM.Model,
		TTSProvider:  h.cfg.TTS.Provider,
		TTSAPIKeySet: h.cfg.TTS.APIKey != "",
		TTSAPIKey:    maskSecret(h.cfg.TTS.APIKey),
		TTSVoiceID:   h.cfg.TTS.VoiceID,
		Proxy:        netproxy.Redact(h.cfg.Proxy.URL),
		Cwd:          cwd,
	})
}

// maskSecret 只保留最后 4 位，短密钥完全隐藏
func maskSecret(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return "****"
	default:
		return "****" + secret[len(secret)-4:]
	}
}
