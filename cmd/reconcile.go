package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/etzold/folio212"
	"github.com/etzold/folio212/renderer"
)

// reconcileCmd holds the flags for the 'reconcile' subcommand.
type reconcileCmd struct {
	reference string
	output    string
	noise     float64
	floor     float64
}

func (*reconcileCmd) Name() string { return "reconcile" }
func (*reconcileCmd) Synopsis() string {
	return "compare computed valuations against a reference dataset"
}
func (*reconcileCmd) Usage() string {
	return `f212 reconcile -reference <file> [-o <file>] [-noise <amount>] [-floor <amount>]

  Fetches every configured account, values it in the reporting currency,
  and flags material discrepancies against the reference CSV.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.reference, "reference", "", "Reference CSV to reconcile against")
	f.StringVar(&c.output, "o", "discrepancy_report.md", "Discrepancy report output file")
	f.Float64Var(&c.noise, "noise", 0.10, "Ignore absolute differences below this amount")
	f.Float64Var(&c.floor, "floor", 10, "Ignore missing reference positions worth less than this amount")
}

func (c *reconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.reference == "" {
		fmt.Fprintf(os.Stderr, "Error: -reference is required\n")
		return subcommands.ExitUsageError
	}
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	clients, err := LoadClients()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report, positions, err := FetchAll(clients, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rows, err := c.readReference()
	var refErr *folio212.ReferenceError
	if errors.As(err, &refErr) {
		// The computed side is still worth showing before failing.
		printMarkdown(renderer.Markdown(report))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rec := folio212.NewReconciler(cfg.Rules, cfg.Rates, cfg.NewNormalizer())
	rec.NoiseFloor = decimal.NewFromFloat(c.noise)
	rec.MaterialityFloor = decimal.NewFromFloat(c.floor)

	discrepancies := rec.Reconcile(positions, rows)
	computedTotal, referenceTotal := rec.Totals(positions, rows)

	out := &renderer.Reconciliation{
		GeneratedAt:    time.Now(),
		ComputedTotal:  computedTotal,
		ReferenceTotal: referenceTotal,
		Discrepancies:  discrepancies,
	}
	md := renderer.ReconciliationMarkdown(out)
	if err := os.WriteFile(c.output, []byte(md), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	fmt.Printf("wrote %s\n", c.output)
	return subcommands.ExitSuccess
}

func (c *reconcileCmd) readReference() ([]folio212.ReferenceRow, error) {
	file, err := os.Open(c.reference)
	if err != nil {
		return nil, &folio212.ReferenceError{Err: err}
	}
	defer file.Close()
	return folio212.ReadReference(file)
}
