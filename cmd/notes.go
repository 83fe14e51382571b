package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/khata-io/khata/renderer"
)

type notesCmd struct{}

func (*notesCmd) Name() string     { return "notes" }
func (*notesCmd) Synopsis() string { return "list a user's notes" }
func (*notesCmd) Usage() string {
	return `kta notes <username>

  Lists the user's notes, newest first.
`
}

func (*notesCmd) SetFlags(_ *flag.FlagSet) {}

func (*notesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one username argument")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	notes, err := svc.ListNotes(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderNotes(renderer.NewNotes(f.Arg(0), notes)))
	return subcommands.ExitSuccess
}

type noteCmd struct{}

func (*noteCmd) Name() string     { return "note" }
func (*noteCmd) Synopsis() string { return "add a note for a user" }
func (*noteCmd) Usage() string {
	return `kta note <username> <content>...

  Saves a timestamped note. All arguments after the username are joined
  into the note content; empty content is rejected.
`
}

func (*noteCmd) SetFlags(_ *flag.FlagSet) {}

func (*noteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <username> <content>")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	note, err := svc.AddNote(ctx, f.Arg(0), strings.Join(f.Args()[1:], " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved note %s\n", note.ID)
	return subcommands.ExitSuccess
}

type rmNoteCmd struct{}

func (*rmNoteCmd) Name() string     { return "rm-note" }
func (*rmNoteCmd) Synopsis() string { return "delete a note" }
func (*rmNoteCmd) Usage() string {
	return `kta rm-note <username> <note-id>

  Deletes the note with the given id. Deleting an unknown id is not an error.
`
}

func (*rmNoteCmd) SetFlags(_ *flag.FlagSet) {}

func (*rmNoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <username> <note-id>")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := svc.DeleteNote(ctx, f.Arg(0), f.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("Note deleted")
	return subcommands.ExitSuccess
}
