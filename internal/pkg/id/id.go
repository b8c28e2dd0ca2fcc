package id

import (
	"github.com/google/uuid"
)

// New 生成新的UUID（string格式）
func New() string {
	return uuid.New().String()
}

// IsValid 验证UUID格式是否有效
// 用于判断客户端透传的 X-Request-ID 是否可以沿用
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
