package model

// Role 消息角色
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage 对话消息，创建后不再修改
type ChatMessage struct {
	Role    Role   `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

// ChatRequest 对话请求
// 标准格式为 messages + system；单条 message 为旧格式，解析时会被转换
type ChatRequest struct {
	Messages []ChatMessage `json:"messages,omitempty" validate:"omitempty,dive"`
	System   string        `json:"system,omitempty"`

	// Deprecated: 使用 Messages
	Message string `json:"message,omitempty"`

	legacy bool
}

// Legacy 是否为旧格式请求（仅包含 message）
func (r *ChatRequest) Legacy() bool {
	return r.legacy
}

// SpeechRequest 语音合成请求
type SpeechRequest struct {
	Text            string   `json:"text" validate:"notblank"`
	VoiceID         string   `json:"voiceId,omitempty" validate:"notblank"`
	ModelID         string   `json:"modelId,omitempty"`
	OutputFormat    string   `json:"outputFormat,omitempty"`
	Stability       *float64 `json:"stability,omitempty" validate:"omitempty,gte=0,lte=1"`
	SimilarityBoost *float64 `json:"similarityBoost,omitempty" validate:"omitempty,gte=0,lte=1"`
}
