package service

import (
	"fmt"
	"unicode/utf8"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/config"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/models"
)

// 校验只看入站载荷本身，不触库。外键指向的行是否存在不在这里保证
// （房主存在性校验是一个已知且有意保留的缺口）。
// 长度一律按字符数（rune）计，多字节 UTF-8 不会提前顶到上限。

// ValidateMessageBody 检查消息长度落在配置的闭区间内。
func ValidateMessageBody(body string, cfg config.Config) error {
	n := utf8.RuneCountInString(body)
	if n < cfg.MinMessageLength {
		return &ValidationError{Field: "message", Reason: "message is too short"}
	}
	if n > cfg.MaxMessageLength {
		return &ValidationError{Field: "message", Reason: "message is too long"}
	}
	return nil
}

// ValidateRoom 保证私有房间必须有房主，此外不做限制。
func ValidateRoom(room models.Room) error {
	if !room.Public && room.Owner == nil {
		return &ValidationError{Field: "owner", Reason: "private rooms must have an owner"}
	}
	return nil
}

// ValidateUsername 检查用户名长度。
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < config.MinUsernameLength || n > config.MaxUsernameLength {
		return &ValidationError{
			Field:  "username",
			Reason: fmt.Sprintf("username length must be between %d and %d", config.MinUsernameLength, config.MaxUsernameLength),
		}
	}
	return nil
}

// ValidateEmail 只做长度级别的形状检查，不做完整的邮箱语法校验。
func ValidateEmail(email string) error {
	n := utf8.RuneCountInString(email)
	if n < config.MinEmailLength || n > config.MaxEmailLength {
		return &ValidationError{
			Field:  "email",
			Reason: fmt.Sprintf("email length must be between %d and %d", config.MinEmailLength, config.MaxEmailLength),
		}
	}
	return nil
}
