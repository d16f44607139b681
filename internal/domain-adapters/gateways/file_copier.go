// Package gateways provides filesystem-facing adapters for the assembler.
package gateways

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileCopier copies artifacts into the distribution tree
type FileCopier struct{}

// NewFileCopier creates a new file copier
func NewFileCopier() *FileCopier {
	return &FileCopier{}
}

// Copy copies src to dst, replacing any existing file at dst and preserving
// the source file mode. The destination's parent directory must exist.
func (c *FileCopier) Copy(src, dst string) error {
	//nolint:gosec // G304: src comes from the configured assembly plan
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	// Write to a temp file in the destination directory, then rename, so a
	// failed copy never leaves a truncated artifact in place.
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write destination: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close destination: %w", err)
	}

	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set mode: %w", err)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace destination: %w", err)
	}

	return nil
}
