package spellcheck

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a stable hash identifying a (text, engine) pair for
// cache keying. The engine name is part of the key so switching engines
// never serves another engine's cached results.
func Fingerprint(text, engine string) string {
	sum := blake2b.Sum256([]byte(strings.TrimSpace(text) + "_" + engine))
	return hex.EncodeToString(sum[:])
}
