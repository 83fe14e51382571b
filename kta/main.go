package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/khata-io/khata/cmd"
)

// completion describes the CLI for shell completion. Running under a
// completion request prints candidates and exits.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"data": predict.Dirs("*"),
	},
	Sub: map[string]*complete.Command{
		"create-user": {Flags: map[string]complete.Predictor{
			"account":  predict.Something,
			"bank":     predict.Something,
			"balance":  predict.Something,
			"currency": predict.Set{"INR", "USD", "EUR"},
		}},
		"users":   {},
		"rm-user": {Flags: map[string]complete.Predictor{"f": predict.Nothing}},
		"ledger":  {},
		"add": {Flags: map[string]complete.Predictor{
			"t":    predict.Set{"credit", "debit"},
			"from": predict.Something,
			"note": predict.Something,
			"date": predict.Something,
		}},
		"rm": {},
		"belongsto": {Flags: map[string]complete.Predictor{
			"sort": predict.Set{"name", "net", "count", "recent"},
		}},
		"notes":   {},
		"note":    {},
		"rm-note": {},
		"serve":   {Flags: map[string]complete.Predictor{"addr": predict.Something}},
		"assist":  {},
		"topic":   {Args: predict.Set{"readme", "dates", "storage", "counterparties"}},
	},
}

func main() {
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
