package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"voxa/internal/model"
	"voxa/internal/pkg/ctxutil"
	httputil "voxa/internal/pkg/http"
	"voxa/internal/service"
)

// ChatHandler 对话中继处理器
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler 创建对话中继处理器
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// Chat 对话接口
// @Summary      对话中继
// @Description  校验消息列表，拼接可选的 system 消息后转发到 LLM 网关，返回第一条回复。旧格式 {message} 已废弃。
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        request  body      model.ChatRequest    true  "对话请求"
// @Success      200      {object}  model.ChatResponse   "回复内容"
// @Failure      400      {object}  ErrorResponse        "请求参数错误"
// @Failure      500      {object}  ErrorResponse        "凭证未配置或内部错误"
// @Failure      502      {object}  ErrorResponse        "模型返回空内容"
// @Router       /api/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse("Invalid JSON body"))
		return
	}

	req, err := model.ParseChatRequest(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(err.Error()))
		return
	}

	if req.Legacy() {
		c.Header("Deprecation", "true")
		log.Warn().
			Str("request_id", ctxutil.GetRequestID(c.Request.Context())).
			Msg("deprecated chat dialect {message}, use {messages, system}")
	}

	content, err := h.chatSvc.Chat(c.Request.Context(), req)
	if err != nil {
		writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{Content: content})
}

// writeChatError 按错误类型输出响应
// 上游状态码原样透传
func writeChatError(c *gin.Context, err error) {
	var upstreamErr *service.ChatUpstreamError

	switch {
	case errors.Is(err, service.ErrMissingCredential):
		log.Error().Err(err).Msg("chat relay not configured")
		c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse("LLM API key not set"))
	case errors.As(err, &upstreamErr):
		c.JSON(upstreamErr.StatusCode, httputil.NewUpstreamErrorResponse(upstreamErr.StatusCode, upstreamErr.Details))
	case errors.Is(err, service.ErrEmptyContent):
		c.JSON(http.StatusBadGateway, httputil.NewErrorResponse("Empty content from model"))
	default:
		log.Error().Err(err).Msg("route /api/chat failed")
		c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse(err.Error()))
	}
}
