package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func CreateSHA256Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// LikeEscaped escapes LIKE wildcards in user-provided filter text.
func LikeEscaped(str string) string {
	str = strings.ReplaceAll(str, "%", `\%`)
	str = strings.ReplaceAll(str, "_", `\_`)
	return str
}
