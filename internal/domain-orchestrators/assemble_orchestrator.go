// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/revelation-hq/revdist/internal/domain/entities"
	"github.com/revelation-hq/revdist/internal/domain/interfaces"
	"github.com/revelation-hq/revdist/internal/domain/services"
)

// Copier interface for placing artifacts into the output tree
type Copier interface {
	Copy(src, dst string) error
}

// Locator interface for resolving artifacts against candidate directories
type Locator interface {
	Locate(name string, searchPaths []string) (string, bool)
}

// Digester interface for computing shipped-file digests
type Digester interface {
	Digest(filePath string) (string, int64, error)
}

// ManifestWriter interface for persisting the distribution manifest
type ManifestWriter interface {
	Write(path string, m *entities.Manifest) error
}

// AssembleOrchestrator coordinates the complete distribution assembly workflow
type AssembleOrchestrator struct {
	copier    Copier
	locator   Locator
	digester  Digester
	manifests *services.ManifestService
	writer    ManifestWriter
	logger    interfaces.Logger
}

// NewAssembleOrchestrator creates a new assemble orchestrator
func NewAssembleOrchestrator(
	copier Copier,
	locator Locator,
	digester Digester,
	writer ManifestWriter,
	logger interfaces.Logger,
) *AssembleOrchestrator {
	return &AssembleOrchestrator{
		copier:    copier,
		locator:   locator,
		digester:  digester,
		manifests: services.NewManifestService(),
		writer:    writer,
		logger:    logger,
	}
}

// AssembleResult contains the result of an assemble operation
type AssembleResult struct {
	Distribution *entities.Distribution
	Manifest     *entities.Manifest
	Duration     time.Duration
}

// Assemble executes the complete assembly workflow: verify the mandatory
// executable exists, create the output tree, copy the executable, copy
// whichever optional artifacts are present, and write the manifest.
// Every step is idempotent or overwrite-based, so re-running is always safe.
func (o *AssembleOrchestrator) Assemble(_ context.Context, layout services.Layout, cfg *entities.DistConfig, goos string) (*AssembleResult, error) {
	start := time.Now()

	exeName := cfg.ExecutableFileName(goos)
	exeSrc := layout.ExecutableSource(exeName)

	// Step 1: the mandatory executable must exist before anything is copied.
	// A distribution without it would be non-functional.
	if _, ok := o.locator.Locate(exeName, []string{layout.ReleaseBinDir()}); !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrMissingArtifact, exeSrc)
	}

	// Step 2: create the output tree
	for _, dir := range layout.OutputTree() {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("%w: %s: %s", entities.ErrDirectoryCreation, dir, err)
		}
	}

	dist := &entities.Distribution{Root: layout.Output}

	// Step 3: copy the executable, overwriting any previous copy
	exe := entities.Artifact{
		Name:    exeName,
		Class:   entities.ClassExecutable,
		Source:  exeSrc,
		RelDest: exeName,
	}
	if err := o.copier.Copy(exe.Source, filepath.Join(layout.Output, exe.RelDest)); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", entities.ErrCopyFailed, exe.Source, err)
	}
	dist.Shipped = append(dist.Shipped, exe)
	o.logger.Info("copied executable", interfaces.F("source", exeSrc))

	// Step 4: optional shared libraries, first search path wins
	for _, name := range cfg.NativeLibraries.Files {
		artifact := entities.Artifact{
			Name:     name,
			Class:    entities.ClassSharedLibrary,
			RelDest:  name,
			Optional: true,
		}

		src, ok := o.locator.Locate(name, cfg.NativeLibraries.SearchPaths)
		if !ok {
			o.logger.Info("optional library not found, skipping", interfaces.F("library", name))
			dist.Skipped = append(dist.Skipped, artifact)
			continue
		}

		artifact.Source = src
		if err := o.copier.Copy(src, filepath.Join(layout.Output, artifact.RelDest)); err != nil {
			o.logger.Warn("optional library copy failed, skipping",
				interfaces.F("library", name), interfaces.F("error", err))
			dist.Skipped = append(dist.Skipped, artifact)
			continue
		}

		dist.Shipped = append(dist.Shipped, artifact)
	}

	// Step 5: optional compiled rule bundles, with their signature sidecars
	for _, name := range cfg.Rules.Compiled {
		bundle := entities.Artifact{
			Name:     name,
			Class:    entities.ClassRuleBundle,
			RelDest:  filepath.Join(services.RulesDirName, services.CompiledDirName, name),
			Optional: true,
		}

		src, ok := o.locator.Locate(name, []string{layout.CompiledRulesSourceDir()})
		if !ok {
			o.logger.Info("compiled rule bundle not found, skipping", interfaces.F("bundle", name))
			dist.Skipped = append(dist.Skipped, bundle)
			continue
		}

		bundle.Source = src
		if err := o.copier.Copy(src, filepath.Join(layout.Output, bundle.RelDest)); err != nil {
			o.logger.Warn("rule bundle copy failed, skipping",
				interfaces.F("bundle", name), interfaces.F("error", err))
			dist.Skipped = append(dist.Skipped, bundle)
			continue
		}
		dist.Shipped = append(dist.Shipped, bundle)

		o.shipSignatureSidecar(layout, bundle, dist)
	}

	manifest, err := o.writeManifest(layout, exeName, dist)
	if err != nil {
		return nil, err
	}

	return &AssembleResult{
		Distribution: dist,
		Manifest:     manifest,
		Duration:     time.Since(start),
	}, nil
}

// shipSignatureSidecar copies a detached signature next to its rule bundle
// when one exists in the source tree
func (o *AssembleOrchestrator) shipSignatureSidecar(layout services.Layout, bundle entities.Artifact, dist *entities.Distribution) {
	sigName := bundle.Name + services.SignatureExtension
	sigSrc, ok := o.locator.Locate(sigName, []string{layout.CompiledRulesSourceDir()})
	if !ok {
		return
	}

	sig := entities.Artifact{
		Name:     sigName,
		Class:    entities.ClassSignature,
		Source:   sigSrc,
		RelDest:  bundle.RelDest + services.SignatureExtension,
		Optional: true,
	}

	if err := o.copier.Copy(sigSrc, filepath.Join(layout.Output, sig.RelDest)); err != nil {
		o.logger.Warn("signature copy failed, skipping",
			interfaces.F("signature", sigName), interfaces.F("error", err))
		return
	}

	dist.Shipped = append(dist.Shipped, sig)
}

func (o *AssembleOrchestrator) writeManifest(layout services.Layout, exeName string, dist *entities.Distribution) (*entities.Manifest, error) {
	files := make([]entities.ManifestFile, 0, len(dist.Shipped))
	for _, a := range dist.Shipped {
		sum, size, err := o.digester.Digest(filepath.Join(layout.Output, a.RelDest))
		if err != nil {
			return nil, fmt.Errorf("failed to digest %s: %w", a.RelDest, err)
		}
		files = append(files, entities.ManifestFile{
			Path:   filepath.ToSlash(a.RelDest),
			Class:  string(a.Class),
			Size:   size,
			SHA256: sum,
		})
	}

	manifest := o.manifests.Build(exeName, files)
	if err := o.writer.Write(layout.ManifestPath(), manifest); err != nil {
		return nil, err
	}

	return manifest, nil
}
