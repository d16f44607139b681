// Package main provides the revdist CLI for assembling Revelation distributions.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "assemble":
		runAssemble(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "rules-update":
		runRulesUpdate(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`revdist - Distribution assembler for the Revelation malware hunter

Usage:
  revdist <command> [options]

Commands:
  assemble      Assemble a shippable distribution under <root>/dist
  verify        Verify an assembled distribution against its manifest
  rules-update  Clone/pull detection-rule repos and rebuild compiled bundles

Use "revdist <command> --help" for more information about a command.`)
}
