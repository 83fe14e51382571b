// Package store provides durable key-value access to a user's persisted
// documents, keyed by the composite (username, kind). Implementations are
// swappable: a filesystem layout matching the original per-user directories,
// an in-memory store for tests, and a Postgres-backed store.
//
// Stores deal in raw document bytes; (un)marshaling is the caller's concern.
package store

import (
	"context"
	"errors"
)

// Kind identifies one of a user's three documents.
type Kind string

const (
	KindProfile      Kind = "details"
	KindTransactions Kind = "transactions"
	KindNotes        Kind = "notes"
)

var (
	// ErrNotExist is returned by Get when the document is absent. Callers
	// decide whether absence is an error: a missing transaction or notes
	// document reads as an empty collection, a missing profile means the
	// user does not exist.
	ErrNotExist = errors.New("store: document does not exist")
	// ErrUserExists is returned by CreateUser when the user's storage
	// location is already taken (lower-cased username collision).
	ErrUserExists = errors.New("store: user already exists")
)

// Store is the capability the services are built on.
type Store interface {
	// Get returns the raw document, or ErrNotExist when absent. Any other
	// error is a read failure, distinct from absence.
	Get(ctx context.Context, username string, kind Kind) ([]byte, error)
	// Put overwrites the whole document. At-most-one writer is assumed; the
	// last write wins.
	Put(ctx context.Context, username string, kind Kind, body []byte) error
	// CreateUser creates the user's storage location with all given
	// documents atomically with respect to callers: either the user exists
	// with every document, or not at all. Returns ErrUserExists on collision.
	CreateUser(ctx context.Context, username string, docs map[Kind][]byte) error
	// DeleteUser removes the user's storage location and all documents.
	// Deleting a non-existent user succeeds.
	DeleteUser(ctx context.Context, username string) error
	// Exists reports whether the user's profile document exists.
	Exists(ctx context.Context, username string) (bool, error)
	// ListUsernames enumerates all user storage locations, sorted.
	ListUsernames(ctx context.Context) ([]string, error)
}
