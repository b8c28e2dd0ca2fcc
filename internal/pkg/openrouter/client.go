package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://openrouter.ai/api/v1"

// ErrEmptyContent 上游返回成功但没有内容
var ErrEmptyContent = errors.New("empty content from model")

// UpstreamError 上游返回非 2xx 状态
type UpstreamError struct {
	StatusCode int
	Details    any // 解析后的 JSON，解析失败时为原始文本
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status %d", e.StatusCode)
}

// Config OpenRouter 配置
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Referer     string // HTTP-Referer
	Title       string // X-Title
	Temperature float64
	MaxTokens   int
}

// Client OpenRouter chat completions 客户端
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient 创建客户端
// httpClient 为空时使用 http.DefaultClient
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Message 上游消息格式
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete 调用 chat completions，返回第一个候选的文本
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	reqBody, err := json.Marshal(completionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		req.Header.Set("X-Title", c.cfg.Title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch to OpenRouter failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstreamErr := &UpstreamError{
			StatusCode: resp.StatusCode,
			Details:    parseDetails(respBody),
		}
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", truncate(string(respBody), 800)).
			Msg("OpenRouter error")
		return "", upstreamErr
	}

	var data completionResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(data.Choices) == 0 || data.Choices[0].Message.Content == "" {
		log.Error().
			Str("body", truncate(string(respBody), 800)).
			Msg("OpenRouter OK but empty content")
		return "", ErrEmptyContent
	}

	return data.Choices[0].Message.Content, nil
}

// parseDetails 优先按 JSON 解析错误体，失败时返回原始文本
func parseDetails(body []byte) any {
	var details any
	if err := json.Unmarshal(body, &details); err != nil {
		return string(body)
	}
	return details
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
