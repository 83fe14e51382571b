package assist

import (
	"context"

	"google.golang.org/genai"

	"github.com/khata-io/khata"
	"github.com/khata-io/khata/renderer"
)

const model = "gemini-2.5-pro"

// NewBookkeeper creates the expert in charge of reading the ledgers. Its tools
// return the same markdown reports the CLI prints, so the model reasons over
// exactly what the user sees.
func NewBookkeeper(svc *khata.Service) *Expert {
	lib := []Function{users(svc), ledger(svc), counterparties(svc)}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the users' ledgers.
		He can list users, read a user's full transaction history and break it down by counterparty.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's personal ledgers.
				Each ledger tracks credits and debits against named counterparties.
				Use the available tools to look up real figures before answering:
				  - list of users and their balances
				  - a user's full transaction history
				  - per-counterparty totals
				Never invent amounts. If a user or counterparty is unknown, say so.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func users(svc *khata.Service) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Users",
			Description: `Users lists every user with their bank and current balance.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of all users.",
			},
		},
		Func: func(ctx context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			entries, err := svc.ListUsers(ctx)
			if err != nil {
				return errResponse(id, "Users", err)
			}
			return okResponse(id, "Users", renderer.RenderDirectory(renderer.NewDirectory(entries)))
		},
	}
}

func ledger(svc *khata.Service) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Ledger",
			Description: `Ledger returns one user's profile, current balance and full transaction history, newest first.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"username": {
						Type:        genai.TypeString,
						Description: "The user whose ledger to read.",
					},
				},
				Required: []string{"username"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the user's ledger.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			l, err := svc.GetLedger(ctx, stringArg(args, "username"))
			if err != nil {
				return errResponse(id, "Ledger", err)
			}
			return okResponse(id, "Ledger", renderer.RenderLedger(renderer.NewLedger(l)))
		},
	}
}

func counterparties(svc *khata.Service) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Counterparties",
			Description: `Counterparties breaks a user's ledger down per counterparty:
			entry count, total credit, total debit and net amount.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"username": {
						Type:        genai.TypeString,
						Description: "The user whose ledger to break down.",
					},
				},
				Required: []string{"username"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table with one row per counterparty.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			username := stringArg(args, "username")
			l, err := svc.GetLedger(ctx, username)
			if err != nil {
				return errResponse(id, "Counterparties", err)
			}
			summaries, err := svc.Summaries(ctx, username, khata.ByAbsNet)
			if err != nil {
				return errResponse(id, "Counterparties", err)
			}
			return okResponse(id, "Counterparties", renderer.RenderCounterparties(renderer.NewCounterparties(l.Profile, summaries)))
		},
	}
}
