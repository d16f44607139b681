package gateways

import (
	"os"
	"path/filepath"
)

// ArtifactLocator resolves optional artifacts against candidate directories.
// Absence is an expected outcome, reported through the boolean rather than an
// error, so callers (and tests) handle present and absent cases explicitly.
type ArtifactLocator struct{}

// NewArtifactLocator creates a new artifact locator
func NewArtifactLocator() *ArtifactLocator {
	return &ArtifactLocator{}
}

// Locate searches the given directories for a regular file with the given
// name and returns its full path. The first directory containing the file
// wins.
func (l *ArtifactLocator) Locate(name string, searchPaths []string) (string, bool) {
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return candidate, true
	}
	return "", false
}
