// Package cmd implements the CLI application to manage personal ledgers.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/khata-io/khata"
	"github.com/khata-io/khata/event"
	"github.com/khata-io/khata/store"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createUserCmd{}, "users")
	c.Register(&usersCmd{}, "users")
	c.Register(&rmUserCmd{}, "users")

	c.Register(&ledgerCmd{}, "transactions")
	c.Register(&addCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")
	c.Register(&belongstoCmd{}, "transactions")

	c.Register(&notesCmd{}, "notes")
	c.Register(&noteCmd{}, "notes")
	c.Register(&rmNoteCmd{}, "notes")

	c.Register(&serveCmd{}, "server")
	c.Register(&assistCmd{}, "assistant")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", "data", "Path to the folder holding one directory per user")

// openStore opens the filesystem store at the app data directory.
func openStore() (store.Store, error) {
	return store.NewFS(*dataDir)
}

// newService builds a service over the app store. CLI commands log to stderr
// at warn level and publish no events.
func newService() (*khata.Service, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	log := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
	return khata.NewService(st, log, event.Nop{}), nil
}

// printMarkdown renders markdown to the terminal. On rendering errors the raw
// markdown is printed instead.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
