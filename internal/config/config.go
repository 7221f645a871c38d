package config

import (
	"errors"
	"os"
	"strconv"
)

// 聊天字段长度边界。消息下限在历史版本里出现过 0 和 1 两种取值，
// 这里默认取 1（空消息等同于缺失字段），并允许环境变量覆盖。
const (
	DefaultMinMessageLength = 1
	DefaultMaxMessageLength = 256

	MinUsernameLength = 1
	MaxUsernameLength = 64

	MinEmailLength = 3
	MaxEmailLength = 255

	MaxPasswordHashLength = 128
)

type Config struct {
	Port             string
	DatabaseDSN      string
	Env              string
	MinMessageLength int
	MaxMessageLength int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func Load() Config {
	return Config{
		Port:             getenv("APP_PORT", "8080"),
		DatabaseDSN:      getenv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=chatserver port=5432 sslmode=disable TimeZone=UTC"),
		Env:              getenv("APP_ENV", "dev"),
		MinMessageLength: getenvInt("MESSAGE_MIN_LENGTH", DefaultMinMessageLength),
		MaxMessageLength: getenvInt("MESSAGE_MAX_LENGTH", DefaultMaxMessageLength),
	}
}

// Validate 在启动前粗检配置，避免带着明显坏值跑起来。
func Validate(cfg Config) error {
	if cfg.Port == "" {
		return errors.New("config: port must not be empty")
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("config: database DSN must not be empty")
	}
	if cfg.MinMessageLength > cfg.MaxMessageLength {
		return errors.New("config: message length bounds are inverted")
	}
	return nil
}
