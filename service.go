package khata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/khata-io/khata/event"
	"github.com/khata-io/khata/store"
)

// Service implements the operation boundary over an injectable store. Every
// operation re-reads from the store; no state is kept between calls.
type Service struct {
	store  store.Store
	log    zerolog.Logger
	events event.Publisher
}

// NewService builds a service. A nil publisher discards events.
func NewService(st store.Store, log zerolog.Logger, pub event.Publisher) *Service {
	if pub == nil {
		pub = event.Nop{}
	}
	return &Service{store: st, log: log, events: pub}
}

// CreateUserRequest carries everything needed to create a user.
type CreateUserRequest struct {
	Username       string
	AccountNumber  string
	Bank           string
	OpeningBalance Amount
	Currency       string
	// UseOldBreakup seeds the ledger with InitialTransactions, for users
	// migrating an existing paper breakup. Each seeded transaction gets a
	// fresh id.
	UseOldBreakup       bool
	InitialTransactions []Transaction
}

// UserLedger is a user's profile with the full transaction list and the
// derived current balance.
type UserLedger struct {
	Profile      Profile
	Transactions []Transaction
	Balance      Amount
}

// DirectoryEntry is one row of the user directory. Err is set when the
// user's documents exist but cannot be read, instead of silently dropping
// the entry.
type DirectoryEntry struct {
	Username string
	Profile  *Profile
	Balance  Amount
	Err      error
}

// CounterpartyLedger is the transaction subset for one counterparty and its
// net amount (credits minus debits, no opening baseline).
type CounterpartyLedger struct {
	Transactions []Transaction
	Net          Amount
}

// CreateUser validates the request and creates the user's three documents
// atomically. It fails with ErrAlreadyExists on a lower-cased username
// collision.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (Profile, error) {
	if strings.TrimSpace(req.Username) == "" {
		return Profile{}, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.AccountNumber) == "" {
		return Profile{}, &ValidationError{Field: "accountNumber", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.Bank) == "" {
		return Profile{}, &ValidationError{Field: "bankName", Reason: "must not be empty"}
	}

	profile := Profile{
		Name:           strings.TrimSpace(req.Username),
		AccountNumber:  strings.TrimSpace(req.AccountNumber),
		Bank:           strings.TrimSpace(req.Bank),
		CurrentBalance: req.OpeningBalance,
		Currency:       strings.ToUpper(strings.TrimSpace(req.Currency)),
		CreatedAt:      time.Now(),
	}

	txns := []Transaction{}
	if req.UseOldBreakup {
		for _, tx := range req.InitialTransactions {
			valid, err := tx.Validate()
			if err != nil {
				return Profile{}, err
			}
			valid.ID = uuid.NewString()
			txns = append(txns, valid)
		}
	}

	docs, err := marshalDocs(map[store.Kind]any{
		store.KindProfile:      profile,
		store.KindTransactions: txns,
		store.KindNotes:        []Note{},
	})
	if err != nil {
		return Profile{}, err
	}

	if err := s.store.CreateUser(ctx, profile.Key(), docs); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			return Profile{}, ErrAlreadyExists
		}
		return Profile{}, fmt.Errorf("could not create user %q: %w", req.Username, err)
	}

	s.log.Info().Str("user", profile.Key()).Int("seeded", len(txns)).Msg("user created")
	s.publish(ctx, event.Event{Type: event.TypeUserCreated, Username: profile.Key()})
	return profile, nil
}

// ListUsers enumerates every user with a derived current balance, so the
// directory agrees with the per-user ledger view. Entries whose documents
// cannot be read come back with Err set rather than being dropped.
func (s *Service) ListUsers(ctx context.Context) ([]DirectoryEntry, error) {
	names, err := s.store.ListUsernames(ctx)
	if err != nil {
		return nil, err
	}

	var entries []DirectoryEntry
	for _, name := range names {
		profile, err := s.loadProfile(ctx, name)
		if errors.Is(err, store.ErrNotExist) {
			// A storage location without a profile document is not a user.
			continue
		}
		entry := DirectoryEntry{Username: name}
		if err != nil {
			entry.Err = err
			entries = append(entries, entry)
			continue
		}
		entry.Profile = &profile
		txns, err := s.loadTransactions(ctx, name)
		if err != nil {
			entry.Err = err
			entry.Balance = profile.CurrentBalance
		} else {
			entry.Balance = CurrentBalance(profile, txns)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetLedger returns the user's profile, full transaction list and derived
// balance, or ErrUserNotFound.
func (s *Service) GetLedger(ctx context.Context, username string) (UserLedger, error) {
	profile, err := s.loadProfile(ctx, username)
	if errors.Is(err, store.ErrNotExist) {
		return UserLedger{}, ErrUserNotFound
	}
	if err != nil {
		return UserLedger{}, err
	}
	txns, err := s.loadTransactions(ctx, username)
	if err != nil {
		return UserLedger{}, err
	}
	return UserLedger{
		Profile:      profile,
		Transactions: txns,
		Balance:      CurrentBalance(profile, txns),
	}, nil
}

// AddTransaction validates the transaction, assigns a fresh id, inserts it at
// the head of the stored list and persists. It fails with ErrUserNotFound
// when the user does not exist.
func (s *Service) AddTransaction(ctx context.Context, username string, tx Transaction) (Transaction, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return Transaction{}, err
	}
	valid, err := tx.Validate()
	if err != nil {
		return Transaction{}, err
	}
	valid.ID = uuid.NewString()

	txns, err := s.loadTransactions(ctx, username)
	if err != nil {
		return Transaction{}, err
	}
	txns = append([]Transaction{valid}, txns...)
	if err := s.saveTransactions(ctx, username, txns); err != nil {
		return Transaction{}, err
	}

	s.log.Info().Str("user", UserKey(username)).Str("id", valid.ID).
		Str("type", string(valid.Type)).Str("amount", valid.Amount.Fixed2()).
		Msg("transaction added")
	s.publish(ctx, event.Event{
		Type:          event.TypeTransactionAdded,
		Username:      UserKey(username),
		TransactionID: valid.ID,
		TxnType:       string(valid.Type),
		Amount:        valid.Amount.Fixed2(),
	})
	return valid, nil
}

// DeleteTransaction removes the transaction with the given id. When no
// transaction matches, it reports ErrTxnNotFound and the stored list is left
// untouched.
func (s *Service) DeleteTransaction(ctx context.Context, username, id string) error {
	txns, err := s.loadTransactions(ctx, username)
	if err != nil {
		return err
	}
	kept := txns[:0:0]
	for _, tx := range txns {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(txns) {
		return ErrTxnNotFound
	}
	if err := s.saveTransactions(ctx, username, kept); err != nil {
		return err
	}
	s.log.Info().Str("user", UserKey(username)).Str("id", id).Msg("transaction deleted")
	s.publish(ctx, event.Event{
		Type:          event.TypeTransactionDeleted,
		Username:      UserKey(username),
		TransactionID: id,
	})
	return nil
}

// DeleteUser removes the user and all documents. Deleting a non-existent
// user succeeds.
func (s *Service) DeleteUser(ctx context.Context, username string) error {
	if err := s.store.DeleteUser(ctx, username); err != nil {
		return err
	}
	s.log.Info().Str("user", UserKey(username)).Msg("user deleted")
	s.publish(ctx, event.Event{Type: event.TypeUserDeleted, Username: UserKey(username)})
	return nil
}

// Counterparties lists the user's distinct counterparties, most recently
// introduced first.
func (s *Service) Counterparties(ctx context.Context, username string) ([]string, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}
	txns, err := s.loadTransactions(ctx, username)
	if err != nil {
		return nil, err
	}
	return Counterparties(txns), nil
}

// CounterpartyLedger returns the transactions grouped under one counterparty
// and their net amount.
func (s *Service) CounterpartyLedger(ctx context.Context, username, name string) (CounterpartyLedger, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return CounterpartyLedger{}, err
	}
	txns, err := s.loadTransactions(ctx, username)
	if err != nil {
		return CounterpartyLedger{}, err
	}
	matched := Filter(txns, name)
	return CounterpartyLedger{Transactions: matched, Net: NetBalance(matched)}, nil
}

// Summaries returns per-counterparty summaries in the requested order.
func (s *Service) Summaries(ctx context.Context, username string, order SummaryOrder) ([]Summary, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}
	txns, err := s.loadTransactions(ctx, username)
	if err != nil {
		return nil, err
	}
	summaries := SummarizeAll(txns)
	SortSummaries(summaries, order)
	return summaries, nil
}

// AddNote trims the content, rejects empty notes, and prepends the new note
// to the stored list. It fails with ErrUserNotFound when the user does not
// exist, so a note can never bring a user directory into being.
func (s *Service) AddNote(ctx context.Context, username, content string) (Note, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return Note{}, err
	}
	note, err := NewNote(content)
	if err != nil {
		return Note{}, err
	}
	notes, err := s.loadNotes(ctx, username)
	if err != nil {
		return Note{}, err
	}
	notes = append([]Note{note}, notes...)
	if err := s.saveNotes(ctx, username, notes); err != nil {
		return Note{}, err
	}
	s.publish(ctx, event.Event{Type: event.TypeNoteAdded, Username: UserKey(username)})
	return note, nil
}

// DeleteNote removes the note with the given id. Removing an unknown id is a
// no-op that still succeeds.
func (s *Service) DeleteNote(ctx context.Context, username, id string) error {
	notes, err := s.loadNotes(ctx, username)
	if err != nil {
		return err
	}
	kept := notes[:0:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return nil
	}
	if err := s.saveNotes(ctx, username, kept); err != nil {
		return err
	}
	s.publish(ctx, event.Event{Type: event.TypeNoteDeleted, Username: UserKey(username)})
	return nil
}

// ListNotes returns the stored notes verbatim (head-first by insertion).
func (s *Service) ListNotes(ctx context.Context, username string) ([]Note, error) {
	return s.loadNotes(ctx, username)
}

func (s *Service) requireUser(ctx context.Context, username string) error {
	ok, err := s.store.Exists(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

func (s *Service) loadProfile(ctx context.Context, username string) (Profile, error) {
	body, err := s.store.Get(ctx, username, store.KindProfile)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return Profile{}, fmt.Errorf("corrupt profile document for %q: %w", username, err)
	}
	return p, nil
}

// loadTransactions reads the user's transaction list. An absent document is
// an empty collection; an unreadable one is a read failure, reported as such
// rather than collapsed into an empty list.
func (s *Service) loadTransactions(ctx context.Context, username string) ([]Transaction, error) {
	body, err := s.store.Get(ctx, username, store.KindTransactions)
	if errors.Is(err, store.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var txns []Transaction
	if err := json.Unmarshal(body, &txns); err != nil {
		return nil, fmt.Errorf("corrupt transaction document for %q: %w", username, err)
	}
	return txns, nil
}

func (s *Service) saveTransactions(ctx context.Context, username string, txns []Transaction) error {
	if txns == nil {
		txns = []Transaction{}
	}
	body, err := json.MarshalIndent(txns, "", "  ")
	if err != nil {
		return err
	}
	return s.store.Put(ctx, username, store.KindTransactions, body)
}

func (s *Service) loadNotes(ctx context.Context, username string) ([]Note, error) {
	body, err := s.store.Get(ctx, username, store.KindNotes)
	if errors.Is(err, store.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var notes []Note
	if err := json.Unmarshal(body, &notes); err != nil {
		return nil, fmt.Errorf("corrupt notes document for %q: %w", username, err)
	}
	return notes, nil
}

func (s *Service) saveNotes(ctx context.Context, username string, notes []Note) error {
	if notes == nil {
		notes = []Note{}
	}
	body, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return err
	}
	return s.store.Put(ctx, username, store.KindNotes, body)
}

func (s *Service) publish(ctx context.Context, e event.Event) {
	e.OccurredAt = time.Now()
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("type", e.Type).Msg("could not publish event")
	}
}

func marshalDocs(docs map[store.Kind]any) (map[store.Kind][]byte, error) {
	out := make(map[store.Kind][]byte, len(docs))
	for kind, v := range docs {
		body, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		out[kind] = body
	}
	return out, nil
}
