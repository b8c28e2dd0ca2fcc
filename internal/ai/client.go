package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"voxa/internal/ai/component"
	"voxa/internal/config"
	voxamodel "voxa/internal/model"
)

// ErrEmptyContent 模型返回空内容
var ErrEmptyContent = errors.New("empty content from model")

// Client AI 能力层客户端
// 职责: 封装 Eino ChatModel，把对话消息转换为 schema.Message
type Client struct {
	chatModel model.BaseChatModel
}

// NewClient 创建 AI 客户端
func NewClient(ctx context.Context, cfg *config.LLMConfig, httpClient *http.Client) (*Client, error) {
	chatModel, err := component.NewChatModel(ctx, cfg, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewClientWithModel(chatModel), nil
}

// NewClientWithModel 使用已有的 ChatModel 创建客户端
func NewClientWithModel(chatModel model.BaseChatModel) *Client {
	return &Client{chatModel: chatModel}
}

// Complete 同步生成回复
func (c *Client) Complete(ctx context.Context, messages []voxamodel.ChatMessage) (string, error) {
	resp, err := c.chatModel.Generate(ctx, toSchemaMessages(messages))
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Content == "" {
		return "", ErrEmptyContent
	}
	return resp.Content, nil
}

func toSchemaMessages(messages []voxamodel.ChatMessage) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case voxamodel.RoleSystem:
			out = append(out, schema.SystemMessage(m.Content))
		case voxamodel.RoleAssistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		default:
			out = append(out, schema.UserMessage(m.Content))
		}
	}
	return out
}
