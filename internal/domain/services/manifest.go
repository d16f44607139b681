package services

import (
	"fmt"
	"sort"

	"github.com/revelation-hq/revdist/internal/domain/entities"
)

// Tool identity recorded in every manifest
const (
	ToolName    = "revdist"
	ToolVersion = "0.3.0"
)

// FindingStatus classifies a single file during verification
type FindingStatus string

// Verification statuses
const (
	StatusOK       FindingStatus = "ok"
	StatusMismatch FindingStatus = "mismatch"
	StatusMissing  FindingStatus = "missing"
)

// Finding is the verification result for one manifest entry
type Finding struct {
	Path   string
	Status FindingStatus
	Detail string
}

// ManifestService builds and validates distribution manifests
type ManifestService struct{}

// NewManifestService creates a new manifest service
func NewManifestService() *ManifestService {
	return &ManifestService{}
}

// Build assembles a manifest from the shipped file entries.
// Entries are sorted by path so the manifest is deterministic across runs.
func (s *ManifestService) Build(executable string, files []entities.ManifestFile) *entities.Manifest {
	sorted := make([]entities.ManifestFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	return &entities.Manifest{
		Tool:       ToolName,
		Version:    ToolVersion,
		Executable: executable,
		Files:      sorted,
	}
}

// Diff compares a manifest against the recomputed state of the distribution.
// The actual map is keyed by relative path; entries absent from it are
// reported as missing.
func (s *ManifestService) Diff(m *entities.Manifest, actual map[string]entities.ManifestFile) []Finding {
	findings := make([]Finding, 0, len(m.Files))

	for _, want := range m.Files {
		got, exists := actual[want.Path]
		switch {
		case !exists:
			findings = append(findings, Finding{
				Path:   want.Path,
				Status: StatusMissing,
				Detail: "file not found in distribution",
			})
		case got.SHA256 != want.SHA256:
			findings = append(findings, Finding{
				Path:   want.Path,
				Status: StatusMismatch,
				Detail: fmt.Sprintf("sha256 mismatch: expected %s, got %s", want.SHA256, got.SHA256),
			})
		case got.Size != want.Size:
			findings = append(findings, Finding{
				Path:   want.Path,
				Status: StatusMismatch,
				Detail: fmt.Sprintf("size mismatch: expected %d, got %d", want.Size, got.Size),
			})
		default:
			findings = append(findings, Finding{Path: want.Path, Status: StatusOK})
		}
	}

	return findings
}
