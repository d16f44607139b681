package yaml

import (
	"fmt"
	"os"

	goyaml "gopkg.in/yaml.v3"

	"github.com/revelation-hq/revdist/internal/domain/entities"
)

// ManifestCodec reads and writes manifest.yaml files
type ManifestCodec struct{}

// NewManifestCodec creates a new manifest codec
func NewManifestCodec() *ManifestCodec {
	return &ManifestCodec{}
}

// Write marshals the manifest to path, replacing any existing file
func (c *ManifestCodec) Write(path string, m *entities.Manifest) error {
	data, err := goyaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// Read unmarshals the manifest at path
func (c *ManifestCodec) Read(path string) (*entities.Manifest, error) {
	//nolint:gosec // G304: manifest path is derived from the dist dir argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m entities.Manifest
	if err := goyaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return &m, nil
}
