package http

// ErrorResponse 错误响应（所有API共用）
// 对话接口: {error, status?, details?}；崩溃时附带 message
type ErrorResponse struct {
	Error   string `json:"error"`             // 错误描述
	Status  int    `json:"status,omitempty"`  // 上游状态码（可选）
	Details any    `json:"details,omitempty"` // 上游错误详情，JSON 或原始文本（可选）
	Message string `json:"message,omitempty"` // 异常信息（可选）
}

// UpstreamErrorResponse 语音网关失败响应
// 字段始终输出，便于前端排查
type UpstreamErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	StatusText  string `json:"statusText"`
	ContentType string `json:"contentType"`
	Details     string `json:"details"`
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// NewUpstreamErrorResponse 创建携带上游状态的错误响应
func NewUpstreamErrorResponse(status int, details any) *ErrorResponse {
	return &ErrorResponse{
		Error:   "Upstream error",
		Status:  status,
		Details: details,
	}
}
