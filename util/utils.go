package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func StrNotSet(value string) bool {
	return len(strings.TrimSpace(value)) == 0
}

// Fingerprint hashes the payload together with every qualifier, in order.
func Fingerprint(payload []byte, qualifiers ...string) string {
	h := sha256.New()
	h.Write(payload)
	for _, q := range qualifiers {
		h.Write([]byte{0})
		h.Write([]byte(q))
	}
	return hex.EncodeToString(h.Sum(nil))
}
