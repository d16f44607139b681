package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/revelation-hq/revdist/internal/domain/entities"
	"github.com/revelation-hq/revdist/internal/domain/interfaces"
)

// Fetcher interface for acquiring upstream rule repositories
type Fetcher interface {
	CloneOrUpdate(ctx context.Context, repoURL, dest string) (string, error)
}

// Combiner interface for building compiled rule bundles
type Combiner interface {
	Combine(repoRoot, outPath string) (int, error)
}

// RulesOrchestrator coordinates the rules-update workflow
type RulesOrchestrator struct {
	fetcher  Fetcher
	combiner Combiner
	logger   interfaces.Logger
}

// NewRulesOrchestrator creates a new rules orchestrator
func NewRulesOrchestrator(fetcher Fetcher, combiner Combiner, logger interfaces.Logger) *RulesOrchestrator {
	return &RulesOrchestrator{
		fetcher:  fetcher,
		combiner: combiner,
		logger:   logger,
	}
}

// UpdateOptions holds configuration for a rules update
type UpdateOptions struct {
	RulesDir             string
	AcceptElasticLicense bool
}

// ruleSourceSpec pins down where a source's rules come from and go to
type ruleSourceSpec struct {
	name        string
	repoURL     string
	repoDir     string
	combinedOut string
	sigma       bool
}

func (o *RulesOrchestrator) resolveSource(source entities.RuleSource, opts UpdateOptions) (*ruleSourceSpec, error) {
	reposDir := filepath.Join(opts.RulesDir, "repos")

	switch source {
	case entities.RuleSourceCommunity:
		return &ruleSourceSpec{
			name:        "community",
			repoURL:     "https://github.com/Yara-Rules/rules.git",
			repoDir:     filepath.Join(reposDir, "yara-rules-community"),
			combinedOut: filepath.Join(opts.RulesDir, "compiled", "community_combined.yar"),
		}, nil
	case entities.RuleSourceElastic:
		if !opts.AcceptElasticLicense {
			return nil, fmt.Errorf(
				"%w: Elastic rules require --accept-elastic-license-2-0 (ELv2); you must explicitly accept the license to download these rules",
				entities.ErrLicenseNotAccepted)
		}
		return &ruleSourceSpec{
			name:        "elastic",
			repoURL:     "https://github.com/elastic/protections-artifacts.git",
			repoDir:     filepath.Join(reposDir, "elastic-protections-artifacts"),
			combinedOut: filepath.Join(opts.RulesDir, "compiled", "elastic_combined.yar"),
		}, nil
	case entities.RuleSourceHayabusa:
		return &ruleSourceSpec{
			name:        "hayabusa",
			repoURL:     "https://github.com/Yamato-Security/hayabusa-rules.git",
			repoDir:     filepath.Join(reposDir, "hayabusa-rules"),
			combinedOut: filepath.Join(opts.RulesDir, "sigma_compiled", "hayabusa_rules_dir.marker"),
			sigma:       true,
		}, nil
	default:
		return nil, fmt.Errorf("unknown rule source: %s", source)
	}
}

// Update clones or pulls the source's repository and rebuilds its compiled
// bundle. Sigma rules are consumed as a directory rather than combined; for
// those a marker file records the pulled commit.
func (o *RulesOrchestrator) Update(ctx context.Context, source entities.RuleSource, opts UpdateOptions) (*entities.RulesUpdateResult, error) {
	rs, err := o.resolveSource(source, opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(rs.repoDir), 0750); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", entities.ErrDirectoryCreation, filepath.Dir(rs.repoDir), err)
	}
	if err := os.MkdirAll(filepath.Dir(rs.combinedOut), 0750); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", entities.ErrDirectoryCreation, filepath.Dir(rs.combinedOut), err)
	}

	commit, err := o.fetcher.CloneOrUpdate(ctx, rs.repoURL, rs.repoDir)
	if err != nil {
		return nil, err
	}
	o.logger.Info("rule repo updated",
		interfaces.F("source", rs.name), interfaces.F("commit", commit))

	result := &entities.RulesUpdateResult{
		Source:       rs.name,
		RepoURL:      rs.repoURL,
		RepoPath:     rs.repoDir,
		HeadCommit:   commit,
		CombinedPath: rs.combinedOut,
	}

	if rs.sigma {
		if err := os.WriteFile(rs.combinedOut, []byte(commit), 0600); err != nil {
			return nil, fmt.Errorf("failed to write sigma marker: %w", err)
		}
		return result, nil
	}

	count, err := o.combiner.Combine(rs.repoDir, rs.combinedOut)
	if err != nil {
		return nil, err
	}
	result.RuleCount = count

	return result, nil
}
