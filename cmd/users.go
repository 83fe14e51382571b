package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/khata-io/khata/renderer"
)

type usersCmd struct{}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list all users with their current balance" }
func (*usersCmd) Usage() string {
	return `kta users

  Lists every user in the data directory with bank and derived current
  balance. Entries whose documents cannot be read are flagged.
`
}

func (*usersCmd) SetFlags(_ *flag.FlagSet) {}

func (*usersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	entries, err := svc.ListUsers(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderDirectory(renderer.NewDirectory(entries)))
	return subcommands.ExitSuccess
}
