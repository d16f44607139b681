package entities

import "strings"

// DistConfig describes what goes into a distribution.
// Parsed from revdist.yml; built-in defaults apply when the file is absent.
type DistConfig struct {
	Executable      string
	NativeLibraries NativeLibraryConfig
	Rules           RuleArtifactConfig
}

// NativeLibraryConfig lists optional shared libraries and where to look for them
type NativeLibraryConfig struct {
	SearchPaths []string // candidate directories, first hit wins
	Files       []string
}

// RuleArtifactConfig lists optional compiled rule bundles to ship
type RuleArtifactConfig struct {
	Compiled   []string
	SigningKey string // path to an armored public key for bundle signatures
}

// ExecutableFileName returns the platform file name of the main executable
func (c *DistConfig) ExecutableFileName(goos string) string {
	if goos == "windows" && !strings.HasSuffix(c.Executable, ".exe") {
		return c.Executable + ".exe"
	}
	return c.Executable
}
