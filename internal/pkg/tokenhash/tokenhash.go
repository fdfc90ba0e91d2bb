// Package tokenhash hashes refresh tokens before they touch the database.
// Only the SHA-256 digest is persisted; the raw token never is.
package tokenhash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-256 digest of a token
func Hash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
