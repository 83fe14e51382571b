package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/khata-io/khata"
)

type handlers struct {
	svc *khata.Service
	log zerolog.Logger
}

// writeServiceError maps the error taxonomy to the three user-visible
// categories. Storage failures are reported generically, without internal
// diagnostics.
func (h *handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, khata.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, khata.ErrTxnNotFound):
		WriteError(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, khata.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, "User already exists")
	case errors.Is(err, khata.ErrEmptyNote) || khata.IsValidation(err):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg("operation failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username            string              `json:"username"`
		AccountNumber       string              `json:"accountNumber"`
		BankName            string              `json:"bankName"`
		OpeningBalance      *khata.Amount       `json:"openingBalance"`
		Currency            string              `json:"currency"`
		UseOldBreakup       bool                `json:"useOldBreakup"`
		InitialTransactions []khata.Transaction `json:"initialTransactions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.AccountNumber == "" || req.BankName == "" || req.OpeningBalance == nil {
		WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	profile, err := h.svc.CreateUser(r.Context(), khata.CreateUserRequest{
		Username:            req.Username,
		AccountNumber:       req.AccountNumber,
		Bank:                req.BankName,
		OpeningBalance:      *req.OpeningBalance,
		Currency:            req.Currency,
		UseOldBreakup:       req.UseOldBreakup,
		InitialTransactions: req.InitialTransactions,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    profile.Name,
	})
}

// userRow is one directory listing entry. Balance is the derived current
// balance; Error is set for entries whose documents could not be read.
type userRow struct {
	Name           string        `json:"name"`
	AccountNumber  string        `json:"accountNumber,omitempty"`
	Bank           string        `json:"bank,omitempty"`
	CurrentBalance *khata.Amount `json:"currentBalance,omitempty"`
	Balance        string        `json:"balance,omitempty"`
	Currency       string        `json:"currency,omitempty"`
	CreatedAt      *time.Time    `json:"createdAt,omitempty"`
	Error          string        `json:"error,omitempty"`
}

func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rows := make([]userRow, 0, len(entries))
	for _, e := range entries {
		row := userRow{Name: e.Username}
		if e.Profile != nil {
			opening := e.Profile.CurrentBalance
			row.Name = e.Profile.Name
			row.AccountNumber = e.Profile.AccountNumber
			row.Bank = e.Profile.Bank
			row.CurrentBalance = &opening
			row.Balance = e.Balance.Fixed2()
			row.Currency = e.Profile.Currency
			created := e.Profile.CreatedAt
			row.CreatedAt = &created
		}
		if e.Err != nil {
			h.log.Warn().Err(e.Err).Str("user", e.Username).Msg("unreadable user entry")
			row.Error = "could not read user data"
		}
		rows = append(rows, row)
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": rows})
}

func (h *handlers) getLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.svc.GetLedger(r.Context(), r.PathValue("username"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"user":         ledger.Profile,
		"transactions": ledger.Transactions,
		"balance":      ledger.Balance.Fixed2(),
	})
}

func (h *handlers) addTransaction(w http.ResponseWriter, r *http.Request) {
	var tx khata.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	added, err := h.svc.AddTransaction(r.Context(), r.PathValue("username"), tx)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Transaction added successfully",
		"id":      added.ID,
	})
}

func (h *handlers) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteTransaction(r.Context(), r.PathValue("username"), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

func (h *handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteUser(r.Context(), r.PathValue("username")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (h *handlers) counterparties(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Counterparties(r.Context(), r.PathValue("username"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"belongsTo": names})
}

func (h *handlers) counterpartyLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.svc.CounterpartyLedger(r.Context(), r.PathValue("username"), r.PathValue("name"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	txns := ledger.Transactions
	if txns == nil {
		txns = []khata.Transaction{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"transactions": txns,
		"netBalance":   ledger.Net.Fixed2(),
	})
}

func (h *handlers) summaries(w http.ResponseWriter, r *http.Request) {
	order, err := khata.ParseSummaryOrder(r.URL.Query().Get("sort"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	summaries, err := h.svc.Summaries(r.Context(), r.PathValue("username"), order)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if summaries == nil {
		summaries = []khata.Summary{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"summaries": summaries})
}

func (h *handlers) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.ListNotes(r.Context(), r.PathValue("username"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if notes == nil {
		notes = []khata.Note{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (h *handlers) addNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	note, err := h.svc.AddNote(r.Context(), r.PathValue("username"), req.Content)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Note saved successfully",
		"note":    note,
	})
}

func (h *handlers) deleteNote(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Note ID is required")
		return
	}
	if err := h.svc.DeleteNote(r.Context(), r.PathValue("username"), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}
