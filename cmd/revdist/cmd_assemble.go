package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/revelation-hq/revdist/internal/domain-adapters/gateways"
	orchestrators "github.com/revelation-hq/revdist/internal/domain-orchestrators"
	"github.com/revelation-hq/revdist/internal/domain/services"
	"github.com/revelation-hq/revdist/internal/external-adapters/charmlog"
	yamladapter "github.com/revelation-hq/revdist/internal/external-adapters/yaml"
)

func runAssemble(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("assemble", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "Path to dist config (default <root>/revdist.yml)")
		outputDir  = fs.String("output-dir", "", "Output directory (default <root>/dist)")
		debug      = fs.Bool("debug", false, "Enable debug logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: revdist assemble [root] [options]

Assemble a self-contained distribution directory: the pre-built executable
from <root>/target/release, any OpenSSL shared libraries found on the
native-library search path, and any compiled rule bundles from
<root>/rules/compiled. Missing optional artifacts are skipped; a missing
executable aborts the run.

Examples:
  revdist assemble                        # assemble from the current directory
  revdist assemble /src/revelation        # explicit source root
  revdist assemble --output-dir /tmp/out  # custom output directory

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	root := "."
	if fs.NArg() >= 1 {
		root = fs.Arg(0)
	}

	layout := services.NewLayout(root)
	if *outputDir != "" {
		layout = services.NewLayoutWithOutput(root, *outputDir)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, "revdist.yml")
	}

	cfg, err := yamladapter.LoadConfig(cfgPath, runtime.GOOS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := charmlog.New(os.Stderr, *debug)
	orch := orchestrators.NewAssembleOrchestrator(
		gateways.NewFileCopier(),
		gateways.NewArtifactLocator(),
		gateways.NewDigester(),
		yamladapter.NewManifestCodec(),
		logger,
	)

	result, err := orch.Assemble(ctx, layout, cfg, runtime.GOOS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gateways.NewSummaryReporter(os.Stdout).Report(result.Distribution)
}
