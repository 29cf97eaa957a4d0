package bootstrap

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/target/garage-api/internal/data/cryptoutil"
)

// CreateEncryptor builds the AES-GCM encryptor for session ids.
// A 64-char hex key is used as-is; anything else is hashed with SHA-256.
func CreateEncryptor(key string) (*cryptoutil.AESGCMEncryptor, error) {
	if key == "" {
		return nil, errors.New("encryption key is required")
	}
	return cryptoutil.NewAESGCMEncryptor(deriveKey(key))
}

func deriveKey(key string) []byte {
	if decoded, err := hex.DecodeString(key); err == nil && len(decoded) == 32 {
		return decoded
	}
	hash := sha256.Sum256([]byte(key))
	return hash[:]
}
