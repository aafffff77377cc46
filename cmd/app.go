// Package cmd implements the CLI application to export and reconcile
// brokerage portfolios.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/etzold/folio212"
	"github.com/etzold/folio212/t212"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&exportCmd{}, "reports")
	c.Register(&reconcileCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")

	c.Register(&ratesCmd{}, "configuration")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a TOML file overriding the built-in normalization tables")

// LoadConfig returns the normalization config: the built-in tables,
// overlaid with the -config file when one is given.
func LoadConfig() (folio212.Config, error) {
	return folio212.LoadConfig(*configFile)
}

// LoadClients builds one API client per configured account key. Keys come
// from the environment, optionally seeded from a .env file; a missing
// .env is not an error. The legacy single API_KEY applies only when no
// per-account key is set.
func LoadClients() ([]*t212.Client, error) {
	godotenv.Load()

	var clients []*t212.Client
	if key := os.Getenv("API_KEY_STOCKS_ISA"); key != "" {
		clients = append(clients, t212.New(key, "Stocks & Shares ISA"))
	}
	if key := os.Getenv("API_KEY_INVEST_ACCOUNT"); key != "" {
		clients = append(clients, t212.New(key, "Invest Account"))
	}
	if len(clients) == 0 {
		if key := os.Getenv("API_KEY"); key != "" {
			clients = append(clients, t212.New(key, "Trading 212"))
		}
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("no API keys found; set API_KEY_STOCKS_ISA and/or API_KEY_INVEST_ACCOUNT (or legacy API_KEY) in the environment or a .env file")
	}
	return clients, nil
}

// printMarkdown pretty-prints markdown on the terminal, falling back to
// the raw text when rendering fails.
func printMarkdown(s string) {
	out, err := glamour.Render(s, "auto")
	if err != nil {
		fmt.Print(s)
		return
	}
	fmt.Print(out)
}
