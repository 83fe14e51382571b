// Package renderer turns service results into markdown reports. Each report
// is a plain view struct populated from the domain types, rendered through an
// embedded text/template assembled from partials.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderLedger renders a user ledger report to a markdown string.
func RenderLedger(l *Ledger) string {
	partials := map[string]string{
		"ledger_title":        "ledger_title.md",
		"ledger_transactions": "ledger_transactions.md",
	}
	return renderTemplate("ledger", "ledger.md", partials, l)
}

// RenderCounterparties renders the per-counterparty summary report.
func RenderCounterparties(c *Counterparties) string {
	partials := map[string]string{
		"counterparties_title":    "counterparties_title.md",
		"counterparties_accounts": "counterparties_accounts.md",
	}
	return renderTemplate("counterparties", "counterparties.md", partials, c)
}

// RenderNotes renders a user's notes to a markdown string.
func RenderNotes(n *Notes) string {
	return renderTemplate("notes", "notes.md", nil, n)
}

// RenderDirectory renders the user directory listing.
func RenderDirectory(d *Directory) string {
	return renderTemplate("directory", "directory.md", nil, d)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
