package artifact

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the sha256 of text as "sha256:<hex>".
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "sha256:" + hex.EncodeToString(sum[:])
}
