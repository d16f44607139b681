// Package entities defines core domain models and data structures.
package entities

// ArtifactClass distinguishes how the assembler treats a shipped file
type ArtifactClass string

// Artifact classes recognized by the assembler
const (
	ClassExecutable    ArtifactClass = "executable"
	ClassSharedLibrary ArtifactClass = "shared-library"
	ClassRuleBundle    ArtifactClass = "rule-bundle"
	ClassSignature     ArtifactClass = "signature"
)

// Artifact represents a single file the assembler ships into the distribution
type Artifact struct {
	Name     string // base file name
	Class    ArtifactClass
	Source   string // resolved absolute source path (empty until located)
	RelDest  string // destination path relative to the distribution root
	Optional bool
}

// Distribution describes an assembled output tree
type Distribution struct {
	Root    string // output directory the artifacts were copied into
	Shipped []Artifact
	Skipped []Artifact // optional artifacts that were absent at assembly time
}
