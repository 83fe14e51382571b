package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/khata-io/khata"
)

type addCmd struct {
	txnType string
	from    string
	note    string
	date    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a credit or debit on a user's ledger" }
func (*addCmd) Usage() string {
	return `kta add [-t credit|debit] [-from <source>] [-note <text>] [-date <date>] <username> <amount> <counterparty>

  Records a transaction at the head of the user's ledger. The date defaults
  to now; amounts must be non-negative, the type carries the sign.

Usage Examples:
# alice received 50 from Bob.
$ kta add -t credit alice 50 Bob

# alice paid 20 to Carol for lunch.
$ kta add -t debit -note lunch alice 20 Carol

`
}

func (p *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.txnType, "t", "credit", "Transaction type: credit or debit.")
	f.StringVar(&p.from, "from", "", "Source of the funds, free text.")
	f.StringVar(&p.note, "note", "", "Free-text note attached to the transaction.")
	f.StringVar(&p.date, "date", "", "Date of the transaction. Defaults to now.")
}

func (p *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expected <username> <amount> <counterparty>")
		return subcommands.ExitUsageError
	}
	amount, err := khata.ParseAmount(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitFailure
	}

	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	added, err := svc.AddTransaction(ctx, f.Arg(0), khata.Transaction{
		Type:      khata.TxnType(p.txnType),
		Amount:    amount,
		From:      p.from,
		BelongsTo: f.Arg(2),
		Note:      p.note,
		Date:      p.date,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Added %s of %s (id %s)\n", added.Type, f.Arg(1), added.ID)
	return subcommands.ExitSuccess
}
