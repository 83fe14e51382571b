package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmUserCmd struct {
	force bool
}

func (*rmUserCmd) Name() string     { return "rm-user" }
func (*rmUserCmd) Synopsis() string { return "delete a user and all their documents" }
func (*rmUserCmd) Usage() string {
	return `kta rm-user -f <username>

  Deletes the user's directory with all transactions and notes. Deleting an
  unknown user is not an error.
`
}

func (p *rmUserCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.force, "f", false, "Confirm the deletion. Without it the command refuses to run.")
}

func (p *rmUserCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one username argument")
		return subcommands.ExitUsageError
	}
	if !p.force {
		fmt.Fprintln(os.Stderr, "Error: deleting a user is irreversible, pass -f to confirm")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := svc.DeleteUser(ctx, f.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted user %q\n", f.Arg(0))
	return subcommands.ExitSuccess
}
