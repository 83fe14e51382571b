package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/khata-io/khata/docs"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `kta topic [<topic>]

  Shows documentation for a given topic. Without an argument, shows the
  readme and the list of available topics.
`
}

func (*topicCmd) SetFlags(_ *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topic := "readme"
	if f.NArg() > 0 {
		topic = f.Arg(0)
	}

	doc, err := docs.Get(topic)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		fmt.Fprintf(os.Stderr, "Available topics: %s\n", strings.Join(docs.All(), ", "))
		return subcommands.ExitFailure
	}
	printMarkdown(doc)

	if topic == "readme" {
		fmt.Printf("Topics: %s\n", strings.Join(docs.All(), ", "))
	}
	return subcommands.ExitSuccess
}
