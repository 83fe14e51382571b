package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // postgres driver
)

// Postgres stores every document as a row in a single documents table, keyed
// by (username, kind). It lets the same service run against a database
// instead of a data directory.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects with the given DSN and ensures the schema exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not reach postgres: %w", err)
	}
	s := &Postgres{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgres wraps an existing connection pool without touching the schema.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) ensureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS documents (
		username TEXT NOT NULL,
		kind     TEXT NOT NULL,
		body     TEXT NOT NULL,
		PRIMARY KEY (username, kind)
	)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("could not create documents table: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *Postgres) Close() error { return s.db.Close() }

func (s *Postgres) Get(ctx context.Context, username string, kind Kind) ([]byte, error) {
	const query = `SELECT body FROM documents WHERE username = $1 AND kind = $2`
	var body []byte
	err := s.db.QueryRowContext(ctx, query, userKey(username), string(kind)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %s document for %q: %w", kind, username, err)
	}
	return body, nil
}

func (s *Postgres) Put(ctx context.Context, username string, kind Kind, body []byte) error {
	const query = `INSERT INTO documents (username, kind, body) VALUES ($1, $2, $3)
		ON CONFLICT (username, kind) DO UPDATE SET body = EXCLUDED.body`
	if _, err := s.db.ExecContext(ctx, query, userKey(username), string(kind), body); err != nil {
		return fmt.Errorf("could not save %s document for %q: %w", kind, username, err)
	}
	return nil
}

func (s *Postgres) CreateUser(ctx context.Context, username string, docs map[Kind][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not create user %q: %w", username, err)
	}
	defer tx.Rollback()

	key := userKey(username)
	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM documents WHERE username = $1 AND kind = $2`,
		key, string(KindProfile)).Scan(&one)
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("could not create user %q: %w", username, err)
	}

	for kind, body := range docs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (username, kind, body) VALUES ($1, $2, $3)`,
			key, string(kind), body); err != nil {
			return fmt.Errorf("could not write %s document for %q: %w", kind, username, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not create user %q: %w", username, err)
	}
	return nil
}

func (s *Postgres) DeleteUser(ctx context.Context, username string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE username = $1`, userKey(username)); err != nil {
		return fmt.Errorf("could not delete user %q: %w", username, err)
	}
	return nil
}

func (s *Postgres) Exists(ctx context.Context, username string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM documents WHERE username = $1 AND kind = $2`,
		userKey(username), string(KindProfile)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not stat user %q: %w", username, err)
	}
	return true, nil
}

func (s *Postgres) ListUsernames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT username FROM documents ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

var _ Store = (*Postgres)(nil)
