package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short stable digest of a document body. Logs carry
// the fingerprint instead of resume or job description text.
func Fingerprint(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])[:12]
}
