// Package services contains pure domain logic for distribution assembly.
package services

import "path/filepath"

// Well-known names inside the source and output trees
const (
	DistDirName        = "dist"
	RulesDirName       = "rules"
	CompiledDirName    = "compiled"
	SigmaDirName       = "sigma"
	ManifestFileName   = "manifest.yaml"
	SignatureExtension = ".asc"
)

// Layout computes every well-known path of a distribution assembly.
// All methods are pure path construction; nothing here touches the filesystem.
type Layout struct {
	Root   string
	Output string
}

// NewLayout creates a layout rooted at the given source directory.
// The output directory defaults to <root>/dist.
func NewLayout(root string) Layout {
	return Layout{
		Root:   root,
		Output: filepath.Join(root, DistDirName),
	}
}

// NewLayoutWithOutput creates a layout with an explicit output directory
func NewLayoutWithOutput(root, output string) Layout {
	return Layout{Root: root, Output: output}
}

// ReleaseBinDir returns the directory the pre-built executable lives in
func (l Layout) ReleaseBinDir() string {
	return filepath.Join(l.Root, "target", "release")
}

// ExecutableSource returns the expected source path of the main executable
func (l Layout) ExecutableSource(name string) string {
	return filepath.Join(l.ReleaseBinDir(), name)
}

// CompiledRulesSourceDir returns the source directory of compiled rule bundles
func (l Layout) CompiledRulesSourceDir() string {
	return filepath.Join(l.Root, RulesDirName, CompiledDirName)
}

// OutputRulesDir returns <output>/rules
func (l Layout) OutputRulesDir() string {
	return filepath.Join(l.Output, RulesDirName)
}

// OutputCompiledRulesDir returns <output>/rules/compiled
func (l Layout) OutputCompiledRulesDir() string {
	return filepath.Join(l.OutputRulesDir(), CompiledDirName)
}

// OutputSigmaRulesDir returns <output>/rules/sigma.
// The assembler always creates it and never populates it; sigma rules are
// placed there by the rules tooling or by hand.
func (l Layout) OutputSigmaRulesDir() string {
	return filepath.Join(l.OutputRulesDir(), SigmaDirName)
}

// ManifestPath returns the path of the manifest inside the output tree
func (l Layout) ManifestPath() string {
	return filepath.Join(l.Output, ManifestFileName)
}

// OutputTree returns every directory the assembler must create, in creation
// order (parents before children)
func (l Layout) OutputTree() []string {
	return []string{
		l.Output,
		l.OutputRulesDir(),
		l.OutputCompiledRulesDir(),
		l.OutputSigmaRulesDir(),
	}
}
