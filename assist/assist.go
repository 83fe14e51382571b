// Package assist provides an interactive AI assistant over the ledger
// service. A single Bookkeeper expert answers questions by calling read-only
// tools on the service and reasoning over the rendered reports.
package assist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Advisor is the AI assistant that handles the chat session.
type Advisor struct {
	w      io.Writer
	r      *bufio.Reader
	Expert *Expert
}

// New creates a new Advisor around the given expert. Output goes to w
// (e.g. os.Stdout), user input is read from r (e.g. os.Stdin).
func New(w io.Writer, r io.Reader, expert *Expert) *Advisor {
	return &Advisor{
		w:      w,
		r:      bufio.NewReader(r),
		Expert: expert,
	}
}

const prompt = "khata> "

// Run starts the interactive REPL session. Any prompts given are consumed
// first, then input is read from the reader. Typing 'bye' exits.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Expert.chat == nil {
		if err := a.Expert.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to khata assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Expert.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
