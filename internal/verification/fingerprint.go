package verification

import (
	"encoding/hex"

	sha256 "github.com/minio/sha256-simd"
)

// Fingerprinter derives a content-addressed identifier from payload bytes.
// Implementations must be pure: the same bytes always give the same result.
type Fingerprinter interface {
	Fingerprint(content []byte) string
}

// SHA256Fingerprinter hashes the full payload with SHA-256 and returns
// 64 lowercase hex characters.
type SHA256Fingerprinter struct{}

// Fingerprint implements Fingerprinter.
func (SHA256Fingerprinter) Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
