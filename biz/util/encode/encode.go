package encode

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum binds value to salt, e.g. a token id to the session it was issued for.
func Checksum(salt, value string) string {
	sum := sha256.Sum256([]byte(salt + ":" + value))
	return hex.EncodeToString(sum[:])
}
