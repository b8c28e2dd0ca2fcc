package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"voxa/internal/config"
	"voxa/internal/model"
)

var (
	// ErrMissingCredential 网关凭证未配置（服务端配置错误）
	ErrMissingCredential = errors.New("missing credential")
	// ErrEmptyContent 上游成功返回但内容为空
	ErrEmptyContent = errors.New("empty content from model")
)

// ChatUpstreamError 对话网关返回非成功状态，状态码原样透传
type ChatUpstreamError struct {
	StatusCode int
	Details    any
}

func (e *ChatUpstreamError) Error() string {
	return fmt.Sprintf("chat upstream error: status %d", e.StatusCode)
}

// Completer 对话网关
type Completer interface {
	Complete(ctx context.Context, messages []model.ChatMessage) (string, error)
}

// ChatService 对话服务 - 业务逻辑层
// 职责: 组装上游消息，控制超时，无状态
type ChatService struct {
	cfg       *config.LLMConfig
	completer Completer
}

// NewChatService 创建对话服务
func NewChatService(cfg *config.LLMConfig, completer Completer) *ChatService {
	return &ChatService{
		cfg:       cfg,
		completer: completer,
	}
}

// Chat 处理对话请求
// 业务流程: 1. 检查凭证 -> 2. 拼接 system 消息 -> 3. 带超时调用网关
func (s *ChatService) Chat(ctx context.Context, req *model.ChatRequest) (string, error) {
	if s.cfg.APIKey == "" || s.completer == nil {
		return "", fmt.Errorf("llm api key: %w", ErrMissingCredential)
	}

	messages := BuildMessages(req.System, req.Messages)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	content, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return "", err
	}

	log.Debug().
		Int("messages", len(messages)).
		Int("content_len", len(content)).
		Msg("chat completed")

	return content, nil
}

// BuildMessages 可选的 system 消息在前，之后是调用方提供的消息
func BuildMessages(system string, messages []model.ChatMessage) []model.ChatMessage {
	out := make([]model.ChatMessage, 0, len(messages)+1)
	if system != "" {
		out = append(out, model.ChatMessage{Role: model.RoleSystem, Content: system})
	}
	return append(out, messages...)
}
