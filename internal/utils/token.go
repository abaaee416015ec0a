package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateActivationToken 生成128字符的一次性激活令牌
func GenerateActivationToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("生成随机令牌失败: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
