package provider

import (
	"context"
	"errors"
	"net/http"

	"voxa/internal/ai"
	"voxa/internal/model"
	"voxa/internal/pkg/openrouter"
	"voxa/internal/service"
)

// OpenRouterCompleter OpenRouter 对话网关（使用 pkg/openrouter 的 Client）
// 实现了 service.Completer 接口
type OpenRouterCompleter struct {
	client *openrouter.Client
}

// NewOpenRouterCompleter 创建 OpenRouter 网关
func NewOpenRouterCompleter(client *openrouter.Client) *OpenRouterCompleter {
	return &OpenRouterCompleter{client: client}
}

// Complete 调用 OpenRouter 并把错误转换为服务层错误
func (p *OpenRouterCompleter) Complete(ctx context.Context, messages []model.ChatMessage) (string, error) {
	wire := make([]openrouter.Message, len(messages))
	for i, m := range messages {
		wire[i] = openrouter.Message{Role: string(m.Role), Content: m.Content}
	}

	content, err := p.client.Complete(ctx, wire)
	if err != nil {
		var upstreamErr *openrouter.UpstreamError
		switch {
		case errors.As(err, &upstreamErr):
			return "", &service.ChatUpstreamError{
				StatusCode: upstreamErr.StatusCode,
				Details:    upstreamErr.Details,
			}
		case errors.Is(err, openrouter.ErrEmptyContent):
			return "", service.ErrEmptyContent
		default:
			return "", err
		}
	}

	return content, nil
}

// EinoCompleter 基于 Eino ChatModel 的对话网关（openai / azure / ark）
// SDK 不暴露上游状态码，模型调用失败统一按 502 透传
type EinoCompleter struct {
	client *ai.Client
}

// NewEinoCompleter 创建 Eino 网关
func NewEinoCompleter(client *ai.Client) *EinoCompleter {
	return &EinoCompleter{client: client}
}

// Complete 调用 ChatModel 并把错误转换为服务层错误
func (p *EinoCompleter) Complete(ctx context.Context, messages []model.ChatMessage) (string, error) {
	content, err := p.client.Complete(ctx, messages)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrEmptyContent):
			return "", service.ErrEmptyContent
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return "", err
		default:
			return "", &service.ChatUpstreamError{
				StatusCode: http.StatusBadGateway,
				Details:    err.Error(),
			}
		}
	}

	return content, nil
}
