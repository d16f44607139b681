package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/revelation-hq/revdist/internal/domain/entities"
	"github.com/revelation-hq/revdist/internal/domain/interfaces"
	"github.com/revelation-hq/revdist/internal/domain/services"
)

// ManifestReader interface for loading a distribution manifest
type ManifestReader interface {
	Read(path string) (*entities.Manifest, error)
}

// SignatureVerifier interface for checking rule bundle signatures
type SignatureVerifier interface {
	ImportKeyFromFile(keyPath string) error
	VerifyDetached(filePath, sigPath string) error
}

// VerifyOrchestrator checks an assembled distribution against its manifest
type VerifyOrchestrator struct {
	reader      ManifestReader
	digester    Digester
	sigVerifier SignatureVerifier
	manifests   *services.ManifestService
	logger      interfaces.Logger
}

// NewVerifyOrchestrator creates a new verify orchestrator
func NewVerifyOrchestrator(
	reader ManifestReader,
	digester Digester,
	sigVerifier SignatureVerifier,
	logger interfaces.Logger,
) *VerifyOrchestrator {
	return &VerifyOrchestrator{
		reader:      reader,
		digester:    digester,
		sigVerifier: sigVerifier,
		manifests:   services.NewManifestService(),
		logger:      logger,
	}
}

// VerifyResult contains the result of a verify operation
type VerifyResult struct {
	Manifest          *entities.Manifest
	Findings          []services.Finding
	SignaturesChecked int
	OK                bool
}

// Verify recomputes size and SHA256 of every manifest entry and, when a
// signing key is given, checks detached signatures of rule bundles
func (o *VerifyOrchestrator) Verify(_ context.Context, distDir, signingKey string) (*VerifyResult, error) {
	manifest, err := o.reader.Read(filepath.Join(distDir, services.ManifestFileName))
	if err != nil {
		return nil, err
	}

	actual := make(map[string]entities.ManifestFile, len(manifest.Files))
	for _, f := range manifest.Files {
		path := filepath.Join(distDir, filepath.FromSlash(f.Path))
		sum, size, err := o.digester.Digest(path)
		if err != nil {
			// Unreadable entries surface as missing in the diff
			o.logger.Debug("could not digest file", interfaces.F("path", f.Path), interfaces.F("error", err))
			continue
		}
		actual[f.Path] = entities.ManifestFile{Path: f.Path, Size: size, SHA256: sum}
	}

	result := &VerifyResult{
		Manifest: manifest,
		Findings: o.manifests.Diff(manifest, actual),
		OK:       true,
	}
	for _, f := range result.Findings {
		if f.Status != services.StatusOK {
			result.OK = false
		}
	}

	if signingKey != "" {
		if err := o.verifySignatures(manifest, distDir, signingKey, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (o *VerifyOrchestrator) verifySignatures(manifest *entities.Manifest, distDir, signingKey string, result *VerifyResult) error {
	if err := o.sigVerifier.ImportKeyFromFile(signingKey); err != nil {
		return fmt.Errorf("failed to import signing key: %w", err)
	}

	for _, f := range manifest.Files {
		if f.Class != string(entities.ClassRuleBundle) {
			continue
		}

		bundle := filepath.Join(distDir, filepath.FromSlash(f.Path))
		sig := bundle + services.SignatureExtension
		if _, err := os.Stat(sig); err != nil {
			o.logger.Info("no signature for rule bundle", interfaces.F("bundle", f.Path))
			continue
		}

		if err := o.sigVerifier.VerifyDetached(bundle, sig); err != nil {
			result.OK = false
			result.Findings = append(result.Findings, services.Finding{
				Path:   f.Path,
				Status: services.StatusMismatch,
				Detail: fmt.Sprintf("signature verification failed: %v", err),
			})
			continue
		}

		result.SignaturesChecked++
	}

	return nil
}
