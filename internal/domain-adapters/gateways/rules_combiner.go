package gateways

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RulesCombiner builds a single compiled bundle out of a rule repository.
// The bundle is a YARA file of include directives, one per rule file, so the
// scanner compiles every rule in the repo through one entry point.
type RulesCombiner struct{}

// NewRulesCombiner creates a new rules combiner
func NewRulesCombiner() *RulesCombiner {
	return &RulesCombiner{}
}

// Combine walks repoRoot for .yar/.yara files and writes an include-directive
// bundle to outPath. Paths are sorted so the bundle is deterministic.
// Returns the number of rule files included.
func (c *RulesCombiner) Combine(repoRoot, outPath string) (int, error) {
	var ruleFiles []string

	err := filepath.Walk(repoRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yar" && ext != ".yara" {
			return nil
		}

		ruleFiles = append(ruleFiles, path)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to walk rule repo: %w", err)
	}

	sort.Strings(ruleFiles)

	var includes strings.Builder
	for _, path := range ruleFiles {
		// YARA include strings use backslash escapes, so Windows separators
		// must be doubled
		escaped := strings.ReplaceAll(path, `\`, `\\`)
		fmt.Fprintf(&includes, "include \"%s\"\n", escaped)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0750); err != nil {
		return 0, fmt.Errorf("failed to create compiled rules dir: %w", err)
	}

	if err := os.WriteFile(outPath, []byte(includes.String()), 0600); err != nil {
		return 0, fmt.Errorf("failed to write combined bundle: %w", err)
	}

	return len(ruleFiles), nil
}
