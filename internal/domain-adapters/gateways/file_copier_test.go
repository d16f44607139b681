package gateways

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileCopier_Copy(t *testing.T) {
	copier := NewFileCopier()
	tmpDir := t.TempDir()

	src := filepath.Join(tmpDir, "revelation")
	//nolint:gosec // G306: Test executable binary needs 0700 permissions
	if err := os.WriteFile(src, []byte("binary content"), 0700); err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}

	dst := filepath.Join(tmpDir, "dist-revelation")
	if err := copier.Copy(src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	if string(got) != "binary content" {
		t.Errorf("Destination content = %q, want %q", got, "binary content")
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("Failed to stat destination: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("Destination mode = %v, want 0700", info.Mode().Perm())
	}
}

func TestFileCopier_Copy_OverwritesExisting(t *testing.T) {
	copier := NewFileCopier()
	tmpDir := t.TempDir()

	src := filepath.Join(tmpDir, "src")
	if err := os.WriteFile(src, []byte("new content"), 0600); err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}

	dst := filepath.Join(tmpDir, "dst")
	if err := os.WriteFile(dst, []byte("stale content from a previous run"), 0600); err != nil {
		t.Fatalf("Failed to create existing destination: %v", err)
	}

	if err := copier.Copy(src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	if string(got) != "new content" {
		t.Errorf("Destination content = %q, want %q", got, "new content")
	}
}

func TestFileCopier_Copy_MissingSource(t *testing.T) {
	copier := NewFileCopier()
	tmpDir := t.TempDir()

	err := copier.Copy(filepath.Join(tmpDir, "does-not-exist"), filepath.Join(tmpDir, "dst"))
	if err == nil {
		t.Fatal("Copy succeeded for a missing source")
	}
}

func TestFileCopier_Copy_LeavesNoTempFilesBehind(t *testing.T) {
	copier := NewFileCopier()
	tmpDir := t.TempDir()

	src := filepath.Join(tmpDir, "src")
	if err := os.WriteFile(src, []byte("content"), 0600); err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}

	destDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(destDir, 0750); err != nil {
		t.Fatalf("Failed to create dest dir: %v", err)
	}

	if err := copier.Copy(src, filepath.Join(destDir, "dst")); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		t.Fatalf("Failed to read dest dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "dst" {
		t.Errorf("Destination dir has unexpected entries: %v", entries)
	}
}
