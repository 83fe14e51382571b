package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/khata-io/khata/renderer"
)

type ledgerCmd struct{}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "display a user's full ledger" }
func (*ledgerCmd) Usage() string {
	return `kta ledger <username>

  Displays the user's profile, current balance and transaction history,
  newest first.
`
}

func (*ledgerCmd) SetFlags(_ *flag.FlagSet) {}

func (*ledgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one username argument")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger, err := svc.GetLedger(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderLedger(renderer.NewLedger(ledger)))
	return subcommands.ExitSuccess
}
