// Package server exposes the ledger service over HTTP. It is a thin
// request-routing layer: every handler decodes the request, invokes one
// service operation and maps the result (or its error category) to a JSON
// response.
package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/khata-io/khata"
)

// New builds the HTTP handler for the given service, with request logging,
// panic recovery and CORS applied.
func New(svc *khata.Service, log zerolog.Logger) http.Handler {
	h := &handlers{svc: svc, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/users", h.createUser)
	mux.HandleFunc("GET /api/users", h.listUsers)

	mux.HandleFunc("GET /api/{username}/transactions", h.getLedger)
	mux.HandleFunc("POST /api/{username}/transactions", h.addTransaction)
	mux.HandleFunc("DELETE /api/{username}/transactions/{id}", h.deleteTransaction)
	mux.HandleFunc("DELETE /api/{username}", h.deleteUser)

	mux.HandleFunc("GET /api/{username}/belongs-to", h.counterparties)
	mux.HandleFunc("GET /api/{username}/belongs-to/{name}", h.counterpartyLedger)
	mux.HandleFunc("GET /api/{username}/summary", h.summaries)

	mux.HandleFunc("GET /api/{username}/notes", h.listNotes)
	mux.HandleFunc("POST /api/{username}/notes", h.addNote)
	mux.HandleFunc("DELETE /api/{username}/notes", h.deleteNote)

	var handler http.Handler = mux
	handler = CORS(handler)
	handler = Recovery(log)(handler)
	handler = Logger(log)(handler)
	return handler
}
