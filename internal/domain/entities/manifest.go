package entities

// Manifest records what an assembled distribution contains.
// It is written as manifest.yaml into the distribution root and carries no
// timestamps so that re-running the assembler yields an identical tree.
type Manifest struct {
	Tool       string         `yaml:"tool"`
	Version    string         `yaml:"version"`
	Executable string         `yaml:"executable"`
	Files      []ManifestFile `yaml:"files"`
}

// ManifestFile describes one shipped file
type ManifestFile struct {
	Path   string `yaml:"path"` // relative to the distribution root
	Class  string `yaml:"class,omitempty"`
	Size   int64  `yaml:"size"`
	SHA256 string `yaml:"sha256"`
}
