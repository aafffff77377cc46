package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etzold/folio212/cmd"
)

func main() {
	// Shell completion: this call exits the process when invoked by the
	// shell's completion hook, before any command runs.
	completion().Complete("f212")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
		},
		Sub: map[string]*complete.Command{
			"export": {Flags: map[string]complete.Predictor{
				"format": predict.Set{"markdown", "csv", "both"},
				"md":     predict.Files("*.md"),
				"csv":    predict.Files("*.csv"),
			}},
			"reconcile": {Flags: map[string]complete.Predictor{
				"reference": predict.Files("*.csv"),
				"o":         predict.Files("*.md"),
				"noise":     predict.Nothing,
				"floor":     predict.Nothing,
			}},
			"summary": {},
			"rates":   {},
		},
	}
}
