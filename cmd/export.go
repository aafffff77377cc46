package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etzold/folio212/renderer"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	format  string
	mdFile  string
	csvFile string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "fetch all accounts and write the portfolio report" }
func (*exportCmd) Usage() string {
	return `f212 export [-format markdown|csv|both] [-md <file>] [-csv <file>]

  Fetches every configured account, normalizes prices and currencies,
  and writes the portfolio report.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "both", "Output format: markdown, csv, or both")
	f.StringVar(&c.mdFile, "md", "trading212_positions.md", "Markdown output file, or - for stdout")
	f.StringVar(&c.csvFile, "csv", "trading212_positions.csv", "CSV output file, or - for stdout")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	wantMD := c.format == "markdown" || c.format == "both"
	wantCSV := c.format == "csv" || c.format == "both"
	if !wantMD && !wantCSV {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
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

	report, _, err := FetchAll(clients, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if wantMD {
		md := renderer.Markdown(report)
		if c.mdFile == "-" {
			fmt.Print(md)
		} else {
			if err := os.WriteFile(c.mdFile, []byte(md), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Printf("wrote %s\n", c.mdFile)
		}
	}
	if wantCSV {
		if c.csvFile == "-" {
			if err := renderer.WriteCSV(os.Stdout, report); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
			return subcommands.ExitSuccess
		}
		file, err := os.Create(c.csvFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		err = renderer.WriteCSV(file, report)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("wrote %s\n", c.csvFile)
	}
	return subcommands.ExitSuccess
}
