package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://api.elevenlabs.io"

// UpstreamError ElevenLabs 返回非 2xx 状态
type UpstreamError struct {
	StatusCode  int
	StatusText  string
	ContentType string
	Details     string // JSON 错误体重新序列化后的文本，或原始文本
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("elevenlabs upstream failed: %d %s", e.StatusCode, e.StatusText)
}

// Client ElevenLabs 文本转语音客户端
// 参考: https://elevenlabs.io/docs/api-reference/text-to-speech/stream
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient 创建客户端
// 不设置超时，也不做重试
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// StreamRequest 合成参数
type StreamRequest struct {
	Text            string
	VoiceID         string
	ModelID         string
	OutputFormat    string
	Stability       float64
	SimilarityBoost float64
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type streamBody struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Stream 发起流式合成，成功时返回音频流，调用方负责关闭
func (c *Client) Stream(ctx context.Context, req *StreamRequest) (io.ReadCloser, error) {
	body, err := json.Marshal(streamBody{
		Text:    req.Text,
		ModelID: req.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       req.Stability,
			SimilarityBoost: req.SimilarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s/stream", c.baseURL, url.PathEscape(req.VoiceID))
	if req.OutputFormat != "" {
		endpoint += "?" + url.Values{"output_format": {req.OutputFormat}}.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")

	log.Debug().
		Str("voice_id", req.VoiceID).
		Str("model_id", req.ModelID).
		Int("text_len", len(req.Text)).
		Msg("sending TTS request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch to ElevenLabs failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, newUpstreamError(resp)
	}

	return resp.Body, nil
}

func newUpstreamError(resp *http.Response) *UpstreamError {
	contentType := resp.Header.Get("Content-Type")
	upstreamErr := &UpstreamError{
		StatusCode:  resp.StatusCode,
		StatusText:  strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))),
		ContentType: contentType,
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return upstreamErr
	}

	// 声明为 JSON 但无法解析时保留原文
	if strings.Contains(contentType, "application/json") {
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err == nil {
			if compact, err := json.Marshal(parsed); err == nil {
				upstreamErr.Details = string(compact)
				return upstreamErr
			}
		}
	}

	upstreamErr.Details = string(raw)
	return upstreamErr
}
