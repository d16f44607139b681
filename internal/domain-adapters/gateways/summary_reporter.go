package gateways

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/revelation-hq/revdist/internal/domain/entities"
)

// SummaryReporter prints the human-readable assembly summary
type SummaryReporter struct {
	out io.Writer
}

// NewSummaryReporter creates a summary reporter writing to out
func NewSummaryReporter(out io.Writer) *SummaryReporter {
	return &SummaryReporter{out: out}
}

// Report confirms the output location and lists the files an operator should
// verify before shipping
func (r *SummaryReporter) Report(dist *entities.Distribution) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(r.out, "%s Distribution assembled at %s\n", green("[OK]"), dist.Root)
	fmt.Fprintf(r.out, "Verify these files before shipping:\n")
	for _, a := range dist.Shipped {
		fmt.Fprintf(r.out, "  %s (%s)\n", a.RelDest, a.Class)
	}

	for _, a := range dist.Skipped {
		fmt.Fprintf(r.out, "%s optional %s %s not found, skipped\n", yellow("[--]"), a.Class, a.Name)
	}
}
