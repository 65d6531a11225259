package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// noFileSentinel stands in for the file hash on plain text requests so that
// text and file requests with the same prompt never collide.
const noFileSentinel = "no_file"

// Fingerprint derives the deterministic cache key for a request: a SHA-256
// digest over the normalized prompt, the action identifier and the content
// hash of any attached file. Equal inputs always yield equal keys.
func Fingerprint(prompt, action, fileHash string) string {
	if fileHash == "" {
		fileHash = noFileSentinel
	}

	normalized := strings.TrimSpace(prompt) + ":" + action + ":" + fileHash

	sum := sha256.Sum256([]byte(normalized))
	return "response:" + hex.EncodeToString(sum[:])
}
