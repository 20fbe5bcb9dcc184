package stream

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint identifies a cap or tail for change detection.
type Fingerprint [blake2b.Size256]byte

// Sum fingerprints data.
func Sum(data []byte) Fingerprint {
	return blake2b.Sum256(data)
}

// SumString fingerprints s.
func SumString(s string) Fingerprint {
	return Sum([]byte(s))
}

// Short returns the first eight hex characters, for logs.
func (f Fingerprint) Short() string {
	return hex.EncodeToString(f[:4])
}
