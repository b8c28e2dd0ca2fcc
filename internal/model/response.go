package model

// ChatResponse 对话成功响应
type ChatResponse struct {
	Content string `json:"content"`
}
