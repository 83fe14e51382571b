package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a transaction from a user's ledger" }
func (*rmCmd) Usage() string {
	return `kta rm <username> <transaction-id>

  Deletes the transaction with the given id. Fails when the id is unknown.
`
}

func (*rmCmd) SetFlags(_ *flag.FlagSet) {}

func (*rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <username> <transaction-id>")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := svc.DeleteTransaction(ctx, f.Arg(0), f.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("Transaction deleted")
	return subcommands.ExitSuccess
}
