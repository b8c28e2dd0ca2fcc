package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"voxa/internal/model"
)

// RelayError 中继返回非成功状态
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("relay error: status %d: %s", e.StatusCode, e.Message)
}

// Relay 对话/语音中继的 HTTP 客户端
type Relay struct {
	baseURL    string
	httpClient *http.Client
}

// NewRelay 创建中继客户端
func NewRelay(baseURL string, httpClient *http.Client) *Relay {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Relay{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Chat 调用 /api/chat，返回模型回复
func (r *Relay) Chat(ctx context.Context, system string, messages []model.ChatMessage) (string, error) {
	payload, err := json.Marshal(model.ChatRequest{System: system, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	resp, err := r.post(ctx, "/api/chat", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var data struct {
		Content string `json:"content"`
		Error   string `json:"error"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := data.Error
		if msg == "" {
			msg = "LLM ERROR"
		}
		return "", &RelayError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode chat response: %w", decodeErr)
	}

	return data.Content, nil
}

// Speak 调用 /api/tts，返回 mp3 音频流，调用方负责关闭
func (r *Relay) Speak(ctx context.Context, text string) (io.ReadCloser, error) {
	payload, err := json.Marshal(model.SpeechRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal speech request: %w", err)
	}

	resp, err := r.post(ctx, "/api/tts", payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = "TTS error"
		}
		return nil, &RelayError{StatusCode: resp.StatusCode, Message: msg}
	}

	return resp.Body, nil
}

func (r *Relay) post(ctx context.Context, path string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	return resp, nil
}
