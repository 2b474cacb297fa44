package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex SHA-256 of parts separated by NUL bytes, so
// ("ab", "c") and ("a", "bc") hash differently.
func Digest(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// OwnerPrefix maps an owner id (user or guest) to a storage namespace that
// is safe to use as a path segment.
func OwnerPrefix(ownerID string) string {
	return Digest("owner", ownerID)[:32]
}
