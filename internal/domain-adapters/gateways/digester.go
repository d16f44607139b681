package gateways

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Digester computes file digests for manifests and verification.
// Pure Go implementation - no external sha256sum binary needed
type Digester struct{}

// NewDigester creates a new digester
func NewDigester() *Digester {
	return &Digester{}
}

// Digest returns the SHA256 digest (hex) and byte size of a file
func (d *Digester) Digest(filePath string) (string, int64, error) {
	//nolint:gosec // G304: File path comes from the assembly plan or manifest
	f, err := os.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), n, nil
}
