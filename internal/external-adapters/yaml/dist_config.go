// Package yaml provides YAML-backed adapters for configuration and manifests.
package yaml

import (
	"fmt"
	"os"

	goyaml "gopkg.in/yaml.v3"

	"github.com/revelation-hq/revdist/internal/domain/entities"
)

// distConfigFile mirrors the revdist.yml schema
type distConfigFile struct {
	Executable      string `yaml:"executable"`
	NativeLibraries struct {
		SearchPaths []string `yaml:"search_paths"`
		Files       []string `yaml:"files"`
	} `yaml:"native_libraries"`
	Rules struct {
		Compiled   []string `yaml:"compiled"`
		SigningKey string   `yaml:"signing_key"`
	} `yaml:"rules"`
}

// DefaultConfig returns the built-in distribution config for a platform.
// The native-library defaults mirror where the build links OpenSSL from:
// the vcpkg install prefix on Windows, the usual lib directories elsewhere.
func DefaultConfig(goos string) *entities.DistConfig {
	cfg := &entities.DistConfig{
		Executable: "revelation",
		Rules: entities.RuleArtifactConfig{
			Compiled: []string{"community_combined.yar"},
		},
	}

	switch goos {
	case "windows":
		cfg.NativeLibraries = entities.NativeLibraryConfig{
			SearchPaths: []string{`C:\vcpkg\installed\x64-windows\bin`},
			Files:       []string{"libcrypto-3-x64.dll", "libssl-3-x64.dll"},
		}
	case "darwin":
		cfg.NativeLibraries = entities.NativeLibraryConfig{
			SearchPaths: []string{"/usr/local/lib", "/opt/homebrew/lib"},
			Files:       []string{"libcrypto.3.dylib", "libssl.3.dylib"},
		}
	default:
		cfg.NativeLibraries = entities.NativeLibraryConfig{
			SearchPaths: []string{"/usr/local/lib", "/usr/lib"},
			Files:       []string{"libcrypto.so.3", "libssl.so.3"},
		}
	}

	return cfg
}

// LoadConfig reads a dist config file, filling unset fields from the
// platform defaults. A missing file yields the defaults unchanged.
func LoadConfig(path, goos string) (*entities.DistConfig, error) {
	cfg := DefaultConfig(goos)

	data, err := os.ReadFile(path) //nolint:gosec // G304: config path is user-provided
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file distConfigFile
	if err := goyaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if file.Executable != "" {
		cfg.Executable = file.Executable
	}
	if file.NativeLibraries.SearchPaths != nil {
		cfg.NativeLibraries.SearchPaths = file.NativeLibraries.SearchPaths
	}
	if file.NativeLibraries.Files != nil {
		cfg.NativeLibraries.Files = file.NativeLibraries.Files
	}
	if file.Rules.Compiled != nil {
		cfg.Rules.Compiled = file.Rules.Compiled
	}
	if file.Rules.SigningKey != "" {
		cfg.Rules.SigningKey = file.Rules.SigningKey
	}

	return cfg, nil
}
