package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/khata-io/khata"
	"github.com/khata-io/khata/renderer"
)

type belongstoCmd struct {
	sort string
}

func (*belongstoCmd) Name() string     { return "belongsto" }
func (*belongstoCmd) Synopsis() string { return "break a user's ledger down per counterparty" }
func (*belongstoCmd) Usage() string {
	return `kta belongsto [-sort name|net|count|recent] <username> [<counterparty>]

  Without a counterparty, displays one summary row per counterparty: entry
  count, total credit, total debit and net amount.
  With a counterparty, displays only that counterparty's transactions and
  their net amount. Counterparty names match ignoring case and surrounding
  whitespace.
`
}

func (p *belongstoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.sort, "sort", "", "Summary row order: name, net, count or recent.")
}

func (p *belongstoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <username> [<counterparty>]")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	username := f.Arg(0)
	if f.NArg() == 2 {
		ledger, err := svc.CounterpartyLedger(ctx, username, f.Arg(1))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		for _, tx := range ledger.Transactions {
			fmt.Printf("%s  %-6s  %s  %s\n", tx.Date, tx.Type, tx.Amount.Fixed2(), tx.Note)
		}
		fmt.Printf("Net: %s\n", ledger.Net.Fixed2())
		return subcommands.ExitSuccess
	}

	order, err := khata.ParseSummaryOrder(p.sort)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	profile, err := svc.GetLedger(ctx, username)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	summaries, err := svc.Summaries(ctx, username, order)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderCounterparties(renderer.NewCounterparties(profile.Profile, summaries)))
	return subcommands.ExitSuccess
}
