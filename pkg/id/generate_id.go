package id

import (
	"crypto/rand"
	"encoding/hex"
)

// idBytes is the entropy behind one identifier; 16 bytes encode to the
// 32 hex characters every entity id column expects.
const idBytes = 16

// NewID32 returns a fresh 32-character lowercase hex identifier with no
// separators or prefixes.
func NewID32() string {
	b := make([]byte, idBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
