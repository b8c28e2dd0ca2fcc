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

// SpeechHandler 语音合成中继处理器
type SpeechHandler struct {
	speechSvc *service.SpeechService
}

// NewSpeechHandler 创建语音合成中继处理器
func NewSpeechHandler(speechSvc *service.SpeechService) *SpeechHandler {
	return &SpeechHandler{speechSvc: speechSvc}
}

// Speech 语音合成接口
// @Summary      语音合成中继
// @Description  校验文本与音色，补全默认参数后调用 TTS 网关，原样返回 mp3 音频流。上游失败统一返回 502。
// @Tags         relay
// @Accept       json
// @Produce      audio/mpeg
// @Param        request  body      model.SpeechRequest    true  "语音合成请求"
// @Success      200      {file}    binary                 "mp3 音频"
// @Failure      400      {object}  ErrorResponse          "请求参数错误"
// @Failure      500      {object}  ErrorResponse          "凭证未配置或内部错误"
// @Failure      502      {object}  UpstreamErrorResponse  "TTS 网关失败"
// @Router       /api/tts [post]
func (h *SpeechHandler) Speech(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse("Invalid JSON body"))
		return
	}

	req, err := model.ParseSpeechRequest(body, h.speechSvc.DefaultVoiceID())
	if err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(err.Error()))
		return
	}

	audio, err := h.speechSvc.Synthesize(c.Request.Context(), req)
	if err != nil {
		writeSpeechError(c, err)
		return
	}
	defer audio.Close()

	c.DataFromReader(http.StatusOK, -1, "audio/mpeg", audio, map[string]string{
		"Content-Disposition": `inline; filename="speech.mp3"`,
		"Cache-Control":       "no-store",
	})
}

// writeSpeechError 按错误类型输出响应
// 上游失败固定映射为 502，不透传上游状态码
func writeSpeechError(c *gin.Context, err error) {
	var upstreamErr *service.SpeechUpstreamError
	requestID := ctxutil.GetRequestID(c.Request.Context())

	switch {
	case errors.Is(err, service.ErrMissingCredential):
		log.Error().Err(err).Str("request_id", requestID).Msg("speech relay not configured")
		c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse("Missing TTS API key"))
	case errors.As(err, &upstreamErr):
		log.Error().
			Str("request_id", requestID).
			Int("status", upstreamErr.StatusCode).
			Str("details", upstreamErr.Details).
			Msg("TTS upstream failed")
		c.JSON(http.StatusBadGateway, httputil.UpstreamErrorResponse{
			Error:       "TTS upstream failed",
			Status:      upstreamErr.StatusCode,
			StatusText:  upstreamErr.StatusText,
			ContentType: upstreamErr.ContentType,
			Details:     upstreamErr.Details,
		})
	default:
		log.Error().Err(err).Str("request_id", requestID).Msg("route /api/tts crashed")
		c.JSON(http.StatusInternalServerError, httputil.ErrorResponse{
			Error:   "TTS route crashed",
			Message: err.Error(),
		})
	}
}
