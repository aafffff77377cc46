package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etzold/folio212"
)

// ratesCmd holds the flags for the 'rates' subcommand.
type ratesCmd struct{}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "display the exchange rates used for valuation" }
func (*ratesCmd) Usage() string {
	return `f212 rates

  Displays the exchange rate table, including any -config override.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	t := cfg.Rates
	fmt.Printf("Exchange rates as of %s:\n", t.AsOf.Format("2006-01-02"))
	fmt.Printf("  %s -> %s  %s\n", folio212.USD, folio212.GBP, t.USDGBP.String())
	fmt.Printf("  %s -> %s  %s\n", folio212.EUR, folio212.GBP, t.EURGBP.String())
	fmt.Printf("  %s -> %s  0.01 (minor unit)\n", folio212.GBX, folio212.GBP)
	return subcommands.ExitSuccess
}
