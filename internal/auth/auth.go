package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword 生成带盐的单向哈希。历史实现曾用明文拼接充当哈希，
// 这里绝不能退回那种做法。
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func VerifyPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
