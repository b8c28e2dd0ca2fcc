package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"voxa/internal/pkg/id"
)

const (
	DefaultAPIURL    = "https://openspeech.bytedance.com/api/v1/tts"
	DefaultCluster   = "volcano_tts"
	DefaultVoiceType = "BV115_streaming"

	// successCode 接口成功时 body 中的 code
	successCode = 3000
)

// Config TTS 配置
type Config struct {
	APIURL      string // API 地址，默认: https://openspeech.bytedance.com/api/v1/tts
	AccessToken string // 访问令牌（必需）
	AppID       string // 应用ID（可选）
	Cluster     string // 集群名称，默认: volcano_tts
	SampleRate  int    // 采样率，默认: 44100
}

// APIError 接口调用失败
// HTTP 状态非 200，或 body 中 code 不是 3000
type APIError struct {
	HTTPStatus  int
	StatusText  string
	ContentType string
	Code        int
	Message     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("volcano tts error: status %d, code %d: %s", e.HTTPStatus, e.Code, e.Message)
}

// Client TTS 客户端封装
// 用于调用火山引擎的 TTS API（文本转语音），返回 mp3 音频
// 参考: https://openspeech.bytedance.com/api/v1/tts
type Client struct {
	apiURL      string
	accessToken string
	appID       string
	cluster     string
	sampleRate  int
	httpClient  *http.Client
}

// NewClient 创建 TTS 客户端
func NewClient(config Config, httpClient *http.Client) *Client {
	apiURL := config.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	cluster := config.Cluster
	if cluster == "" {
		cluster = DefaultCluster
	}

	sampleRate := config.SampleRate
	if sampleRate == 0 {
		sampleRate = 44100
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		apiURL:      apiURL,
		accessToken: config.AccessToken,
		appID:       config.AppID,
		cluster:     cluster,
		sampleRate:  sampleRate,
		httpClient:  httpClient,
	}
}

// Synthesize 合成语音，返回 mp3 字节
func (c *Client) Synthesize(ctx context.Context, text, voiceType string, speedRatio float64) ([]byte, error) {
	if voiceType == "" {
		voiceType = DefaultVoiceType
	}
	if speedRatio <= 0 {
		speedRatio = 1.0
	}

	requestID := id.New()
	reqBody, err := json.Marshal(c.buildRequestConfig(text, voiceType, requestID, speedRatio))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// 火山引擎要求的格式是 "Bearer;{token}"
	req.Header.Set("Authorization", fmt.Sprintf("Bearer; %s", c.accessToken))
	req.Header.Set("Content-Type", "application/json")

	log.Debug().
		Str("request_id", requestID).
		Str("voice_type", voiceType).
		Int("text_len", len(text)).
		Msg("sending TTS request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch to volcano TTS failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	apiErr := &APIError{
		HTTPStatus:  resp.StatusCode,
		StatusText:  strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))),
		ContentType: resp.Header.Get("Content-Type"),
	}

	if resp.StatusCode != http.StatusOK {
		apiErr.Message = string(respBody)
		return nil, apiErr
	}

	var apiResp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    string `json:"data"`
	}
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Code != successCode {
		apiErr.Code = apiResp.Code
		apiErr.Message = apiResp.Message
		if apiErr.Message == "" {
			apiErr.Message = "unknown error"
		}
		return nil, apiErr
	}

	if apiResp.Data == "" {
		return nil, fmt.Errorf("audio data not found in response")
	}

	audio, err := base64.StdEncoding.DecodeString(apiResp.Data)
	if err != nil {
		return nil, fmt.Errorf("decode audio data: %w", err)
	}

	return audio, nil
}

// buildRequestConfig 构建请求配置
// 参考官方文档: https://openspeech.bytedance.com/api/v1/tts
func (c *Client) buildRequestConfig(text, voiceType, requestID string, speedRatio float64) map[string]any {
	appConfig := map[string]any{
		"token":   c.accessToken,
		"cluster": c.cluster,
	}
	if c.appID != "" {
		appConfig["appid"] = c.appID
	}

	audioConfig := map[string]any{
		"voice_type":   voiceType,
		"encoding":     "mp3",
		"rate":         c.sampleRate,
		"speed_ratio":  speedRatio,
		"volume_ratio": 1.0,
		"pitch_ratio":  1.0,
	}

	requestConfig := map[string]any{
		"reqid":     requestID,
		"text":      text,
		"text_type": "plain",
		"operation": "query",
	}

	return map[string]any{
		"app":     appConfig,
		"user":    map[string]any{"uid": requestID},
		"audio":   audioConfig,
		"request": requestConfig,
	}
}
