package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/revelation-hq/revdist/internal/domain-adapters/gateways"
	orchestrators "github.com/revelation-hq/revdist/internal/domain-orchestrators"
	"github.com/revelation-hq/revdist/internal/domain/entities"
	"github.com/revelation-hq/revdist/internal/external-adapters/charmlog"
)

func runRulesUpdate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rules-update", flag.ExitOnError)
	var (
		source        = fs.String("source", "community", "Rule source: community, elastic, or hayabusa")
		rulesDir      = fs.String("rules-dir", "rules", "Rules directory")
		acceptElastic = fs.Bool("accept-elastic-license-2-0", false, "Accept the Elastic License 2.0 (required for --source elastic)")
		debug         = fs.Bool("debug", false, "Enable debug logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: revdist rules-update [options]

Clone or pull an upstream detection-rule repository and rebuild its compiled
bundle under <rules-dir>/compiled. Sigma rules (hayabusa) are kept as a
directory; a marker file records the pulled commit.

Examples:
  revdist rules-update
  revdist rules-update --source elastic --accept-elastic-license-2-0
  revdist rules-update --source hayabusa --rules-dir /opt/revelation/rules

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	logger := charmlog.New(os.Stderr, *debug)
	orch := orchestrators.NewRulesOrchestrator(
		gateways.NewRulesFetcher(),
		gateways.NewRulesCombiner(),
		logger,
	)

	result, err := orch.Update(ctx, entities.RuleSource(*source), orchestrators.UpdateOptions{
		RulesDir:             *rulesDir,
		AcceptElasticLicense: *acceptElastic,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("[OK] Rules updated: %s\n", result.Source)
	fmt.Printf("     Repo URL:  %s\n", result.RepoURL)
	fmt.Printf("     Repo path: %s\n", result.RepoPath)
	fmt.Printf("     Commit:    %s\n", result.HeadCommit)
	fmt.Printf("     Combined:  %s\n", result.CombinedPath)
	if result.RuleCount > 0 {
		fmt.Printf("     Rules:     %d\n", result.RuleCount)
	}
}
