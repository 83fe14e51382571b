package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/khata-io/khata"
)

type createUserCmd struct {
	account  string
	bank     string
	balance  string
	currency string
}

func (*createUserCmd) Name() string     { return "create-user" }
func (*createUserCmd) Synopsis() string { return "create a new user with an opening balance" }
func (*createUserCmd) Usage() string {
	return `kta create-user -account <number> -bank <name> [-balance <amount>] [-currency <code>] <username>

  Creates the user's ledger documents. The username is case-folded to pick
  the storage location, but kept as given for display.

Usage Examples:
# Create alice with an opening balance of 250.
$ kta create-user -account 00112233 -bank HDFC -balance 250 alice

`
}

func (p *createUserCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.account, "account", "", "Account number of the underlying bank account.")
	f.StringVar(&p.bank, "bank", "", "Name of the bank.")
	f.StringVar(&p.balance, "balance", "0", "Opening balance.")
	f.StringVar(&p.currency, "currency", "", "ISO 4217 display currency. Defaults to INR.")
}

func (p *createUserCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one username argument")
		return subcommands.ExitUsageError
	}
	balance, err := khata.ParseAmount(p.balance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing balance: %v\n", err)
		return subcommands.ExitFailure
	}

	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	profile, err := svc.CreateUser(ctx, khata.CreateUserRequest{
		Username:       f.Arg(0),
		AccountNumber:  p.account,
		Bank:           p.bank,
		OpeningBalance: balance,
		Currency:       p.currency,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created user %q with opening balance %s\n", profile.Name, profile.CurrentBalance.Display(profile.DisplayCurrency()))
	return subcommands.ExitSuccess
}
