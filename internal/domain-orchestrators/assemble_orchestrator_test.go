package orchestrators

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/revelation-hq/revdist/internal/domain-adapters/gateways"
	"github.com/revelation-hq/revdist/internal/domain/entities"
	"github.com/revelation-hq/revdist/internal/domain/interfaces"
	"github.com/revelation-hq/revdist/internal/domain/services"
	yamladapter "github.com/revelation-hq/revdist/internal/external-adapters/yaml"
)

func newAssembler() *AssembleOrchestrator {
	return NewAssembleOrchestrator(
		gateways.NewFileCopier(),
		gateways.NewArtifactLocator(),
		gateways.NewDigester(),
		yamladapter.NewManifestCodec(),
		&interfaces.NoOpLogger{},
	)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("Failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// testConfig returns a config with no default search paths so tests control
// exactly which optional artifacts are present
func testConfig(libDirs []string) *entities.DistConfig {
	return &entities.DistConfig{
		Executable: "revelation",
		NativeLibraries: entities.NativeLibraryConfig{
			SearchPaths: libDirs,
			Files:       []string{"libcrypto.so.3", "libssl.so.3"},
		},
		Rules: entities.RuleArtifactConfig{
			Compiled: []string{"community_combined.yar"},
		},
	}
}

// snapshotTree maps every file under root (relative path) to its content
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			tree[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path) //nolint:gosec // G304: test traversal
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot %s: %v", root, err)
	}
	return tree
}

func TestAssemble_ExampleScenario(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "target", "release", "revelation"), "the binary")
	writeTestFile(t, filepath.Join(root, "rules", "compiled", "community_combined.yar"), "include rules")

	layout := services.NewLayout(root)
	// Library search path exists but holds no libraries
	result, err := newAssembler().Assemble(context.Background(), layout, testConfig([]string{t.TempDir()}), "linux")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	// Mandatory executable and rule bundle are shipped
	for _, rel := range []string{
		"revelation",
		filepath.Join("rules", "compiled", "community_combined.yar"),
	} {
		if _, err := os.Stat(filepath.Join(layout.Output, rel)); err != nil {
			t.Errorf("Expected %s in distribution: %v", rel, err)
		}
	}

	// Sigma directory is created even though nothing populates it
	sigmaDir := filepath.Join(layout.Output, "rules", "sigma")
	entries, err := os.ReadDir(sigmaDir)
	if err != nil {
		t.Fatalf("Sigma dir was not created: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Sigma dir is not empty: %v", entries)
	}

	// Absent libraries are skipped, not shipped
	for _, lib := range []string{"libcrypto.so.3", "libssl.so.3"} {
		if _, err := os.Stat(filepath.Join(layout.Output, lib)); !os.IsNotExist(err) {
			t.Errorf("Unexpected library %s in distribution", lib)
		}
	}
	if len(result.Distribution.Skipped) != 2 {
		t.Errorf("Skipped = %d artifacts, want 2", len(result.Distribution.Skipped))
	}
	if len(result.Distribution.Shipped) != 2 {
		t.Errorf("Shipped = %d artifacts, want 2", len(result.Distribution.Shipped))
	}

	// Manifest covers every shipped file
	if result.Manifest == nil || len(result.Manifest.Files) != 2 {
		t.Fatalf("Manifest = %+v, want 2 file entries", result.Manifest)
	}
	if _, err := os.Stat(layout.ManifestPath()); err != nil {
		t.Errorf("Manifest was not written: %v", err)
	}
}

func TestAssemble_MissingExecutableIsFatal(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "rules", "compiled", "community_combined.yar"), "include rules")

	layout := services.NewLayout(root)
	_, err := newAssembler().Assemble(context.Background(), layout, testConfig(nil), "linux")
	if err == nil {
		t.Fatal("Assemble succeeded without the mandatory executable")
	}
	if !errors.Is(err, entities.ErrMissingArtifact) {
		t.Errorf("error = %v, want ErrMissingArtifact", err)
	}

	// Nothing is created before the mandatory check passes
	if _, statErr := os.Stat(layout.Output); !os.IsNotExist(statErr) {
		t.Error("Output directory was created despite the missing executable")
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	root := t.TempDir()
	libDir := t.TempDir()
	writeTestFile(t, filepath.Join(root, "target", "release", "revelation"), "the binary")
	writeTestFile(t, filepath.Join(root, "rules", "compiled", "community_combined.yar"), "include rules")
	writeTestFile(t, filepath.Join(libDir, "libcrypto.so.3"), "crypto lib")

	layout := services.NewLayout(root)
	orch := newAssembler()
	cfg := testConfig([]string{libDir})

	if _, err := orch.Assemble(context.Background(), layout, cfg, "linux"); err != nil {
		t.Fatalf("First Assemble failed: %v", err)
	}
	first := snapshotTree(t, layout.Output)

	if _, err := orch.Assemble(context.Background(), layout, cfg, "linux"); err != nil {
		t.Fatalf("Second Assemble failed: %v", err)
	}
	second := snapshotTree(t, layout.Output)

	if len(first) != len(second) {
		t.Fatalf("Tree size changed between runs: %d vs %d", len(first), len(second))
	}
	for rel, content := range first {
		if second[rel] != content {
			t.Errorf("%s differs between runs", rel)
		}
	}
}

func TestAssemble_OverwritesStaleOutput(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "target", "release", "revelation"), "current binary")

	layout := services.NewLayout(root)
	// Simulate a previous run that shipped an older binary
	writeTestFile(t, filepath.Join(layout.Output, "revelation"), "stale binary")

	cfg := testConfig(nil)
	cfg.Rules.Compiled = nil
	cfg.NativeLibraries.Files = nil

	if _, err := newAssembler().Assemble(context.Background(), layout, cfg, "linux"); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(layout.Output, "revelation"))
	if err != nil {
		t.Fatalf("Failed to read shipped binary: %v", err)
	}
	if string(got) != "current binary" {
		t.Errorf("Shipped binary = %q, want current source content", got)
	}
}

func TestAssemble_ShipsPresentLibraries(t *testing.T) {
	root := t.TempDir()
	emptyDir := t.TempDir()
	libDir := t.TempDir()
	writeTestFile(t, filepath.Join(root, "target", "release", "revelation"), "the binary")
	writeTestFile(t, filepath.Join(libDir, "libcrypto.so.3"), "crypto lib")
	writeTestFile(t, filepath.Join(libDir, "libssl.so.3"), "ssl lib")

	layout := services.NewLayout(root)
	result, err := newAssembler().Assemble(context.Background(), layout, testConfig([]string{emptyDir, libDir}), "linux")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	for _, lib := range []string{"libcrypto.so.3", "libssl.so.3"} {
		if _, err := os.Stat(filepath.Join(layout.Output, lib)); err != nil {
			t.Errorf("Expected library %s in distribution: %v", lib, err)
		}
	}
	if len(result.Distribution.Skipped) != 1 {
		// Only the rule bundle is absent in this scenario
		t.Errorf("Skipped = %d artifacts, want 1", len(result.Distribution.Skipped))
	}
}

func TestAssemble_ShipsSignatureSidecar(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "target", "release", "revelation"), "the binary")
	writeTestFile(t, filepath.Join(root, "rules", "compiled", "community_combined.yar"), "include rules")
	writeTestFile(t, filepath.Join(root, "rules", "compiled", "community_combined.yar.asc"), "armored signature")

	layout := services.NewLayout(root)
	cfg := testConfig(nil)
	cfg.NativeLibraries.Files = nil

	result, err := newAssembler().Assemble(context.Background(), layout, cfg, "linux")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	sigPath := filepath.Join(layout.Output, "rules", "compiled", "community_combined.yar.asc")
	if _, err := os.Stat(sigPath); err != nil {
		t.Errorf("Signature sidecar was not shipped: %v", err)
	}
	if len(result.Distribution.Shipped) != 3 {
		t.Errorf("Shipped = %d artifacts, want 3 (binary, bundle, signature)", len(result.Distribution.Shipped))
	}
}
