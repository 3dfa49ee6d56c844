package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey generates a SHA256 hex digest for use as a cache or index key
func HashKey(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}
