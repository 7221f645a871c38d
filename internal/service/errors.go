package service

import (
	"errors"
	"fmt"
)

// 业务层通用错误，handler 根据错误类型映射到合适的 HTTP 状态码。
// 创建冲突和查询未命中是两类不同的客户端错误，不要混用。
var (
	ErrRoomExists      = errors.New("room already exists")
	ErrRoomNotFound    = errors.New("room not found")
	ErrMessageExists   = errors.New("message already exists")
	ErrMessageNotFound = errors.New("message not found")
	ErrUserExists      = errors.New("user already exists")
	ErrEmailTaken      = errors.New("email already in use")
	ErrUserNotFound    = errors.New("user not found")
)

// ValidationError 表示入站实体的字段级校验失败，handler 映射为 422。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// AsValidation 判断 err 是否为字段校验错误。
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
