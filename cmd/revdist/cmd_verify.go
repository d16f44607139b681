package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/revelation-hq/revdist/internal/domain-adapters/gateways"
	orchestrators "github.com/revelation-hq/revdist/internal/domain-orchestrators"
	"github.com/revelation-hq/revdist/internal/domain/services"
	"github.com/revelation-hq/revdist/internal/external-adapters/charmlog"
	"github.com/revelation-hq/revdist/internal/external-adapters/gpg"
	yamladapter "github.com/revelation-hq/revdist/internal/external-adapters/yaml"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		signingKey = fs.String("signing-key", "", "Armored public key for rule bundle signatures")
		debug      = fs.Bool("debug", false, "Enable debug logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: revdist verify [dist-dir] [options]

Verify an assembled distribution against its manifest: every listed file is
re-hashed and compared. With --signing-key, detached signatures of rule
bundles are verified as well.

Examples:
  revdist verify                    # verify ./dist
  revdist verify /tmp/out
  revdist verify dist --signing-key keys/revelation-rules.asc

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	distDir := services.DistDirName
	if fs.NArg() >= 1 {
		distDir = fs.Arg(0)
	}

	logger := charmlog.New(os.Stderr, *debug)
	orch := orchestrators.NewVerifyOrchestrator(
		yamladapter.NewManifestCodec(),
		gateways.NewDigester(),
		gpg.NewVerifier(),
		logger,
	)

	result, err := orch.Verify(ctx, distDir, *signingKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, f := range result.Findings {
		switch f.Status {
		case services.StatusOK:
			fmt.Printf("  OK        %s\n", f.Path)
		case services.StatusMissing:
			fmt.Printf("  MISSING   %s\n", f.Path)
		case services.StatusMismatch:
			fmt.Printf("  MISMATCH  %s (%s)\n", f.Path, f.Detail)
		}
	}

	if result.SignaturesChecked > 0 {
		fmt.Printf("Rule bundle signatures verified: %d\n", result.SignaturesChecked)
	}

	if !result.OK {
		fmt.Fprintf(os.Stderr, "Verification failed for %s\n", distDir)
		os.Exit(1)
	}

	fmt.Printf("[OK] Distribution at %s matches its manifest\n", distDir)
}
