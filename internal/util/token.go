package util

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHexToken : byteLength случайных байт из crypto/rand в hex (2*byteLength символов)
func RandomHexToken(byteLength int) (string, error) {
	bytes := make([]byte, byteLength)

	if _, err := rand.Read(bytes); err != nil {
		return "", LogError("[util] ошибка генерации токена", err)
	}

	return hex.EncodeToString(bytes), nil
}
