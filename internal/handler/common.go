package handler

import (
	httputil "voxa/internal/pkg/http"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// UpstreamErrorResponse 语音网关失败响应类型别名
type UpstreamErrorResponse = httputil.UpstreamErrorResponse
