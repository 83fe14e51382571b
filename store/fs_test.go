package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newFSStore(t *testing.T) *FS {
	t.Helper()
	s, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func sampleDocs() map[Kind][]byte {
	return map[Kind][]byte{
		KindProfile:      []byte(`{"name":"alice"}`),
		KindTransactions: []byte(`[]`),
		KindNotes:        []byte(`[]`),
	}
}

func TestFSCreateUserLaysOutDocuments(t *testing.T) {
	s := newFSStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, "Alice", sampleDocs()); err != nil {
		t.Fatal(err)
	}

	// The directory is the folded username, each document a .json file.
	for _, file := range []string{"details.json", "transactions.json", "notes.json"} {
		if _, err := os.Stat(filepath.Join(s.root, "alice", file)); err != nil {
			t.Errorf("missing %s: %v", file, err)
		}
	}

	body, err := s.Get(ctx, "ALICE", KindProfile)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"name":"alice"}` {
		t.Errorf("profile body = %s", body)
	}
}

func TestFSCreateUserCollision(t *testing.T) {
	s := newFSStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, "alice", sampleDocs()); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateUser(ctx, " Alice ", sampleDocs()); !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestFSGetAbsentDocument(t *testing.T) {
	s := newFSStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "nobody", KindProfile); !errors.Is(err, ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}

	// An existing user with one document removed reports absence for that
	// document only.
	if err := s.CreateUser(ctx, "alice", sampleDocs()); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(s.root, "alice", "notes.json")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "alice", KindNotes); !errors.Is(err, ErrNotExist) {
		t.Errorf("expected ErrNotExist for the removed document, got %v", err)
	}
	if _, err := s.Get(ctx, "alice", KindProfile); err != nil {
		t.Errorf("profile should still be readable: %v", err)
	}
}

func TestFSPutOverwrites(t *testing.T) {
	s := newFSStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "alice", KindNotes, []byte(`[1]`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "alice", KindNotes, []byte(`[1,2]`)); err != nil {
		t.Fatal(err)
	}
	body, err := s.Get(ctx, "alice", KindNotes)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `[1,2]` {
		t.Errorf("body = %s, want the last write", body)
	}

	// The staged temp file must not survive the rename.
	entries, err := os.ReadDir(filepath.Join(s.root, "alice"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "notes.json" {
			t.Errorf("unexpected leftover file %q", e.Name())
		}
	}
}

func TestFSDeleteUserIsIdempotent(t *testing.T) {
	s := newFSStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, "alice", sampleDocs()); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteUser(ctx, "alice"); err != nil {
		t.Fatal(err)
	}
	if ok, err := s.Exists(ctx, "alice"); err != nil || ok {
		t.Errorf("Exists after delete = (%v, %v), want (false, nil)", ok, err)
	}
	if err := s.DeleteUser(ctx, "alice"); err != nil {
		t.Errorf("second delete failed: %v", err)
	}
}

func TestFSListUsernamesSkipsHiddenDirs(t *testing.T) {
	s := newFSStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, "bob", sampleDocs()); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateUser(ctx, "alice", sampleDocs()); err != nil {
		t.Fatal(err)
	}
	// A stale staging directory and a stray file must not appear.
	if err := os.Mkdir(filepath.Join(s.root, ".staging-carol-123"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.root, "stray.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	names, err := s.ListUsernames(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
		t.Errorf("names = %v, want [alice bob]", names)
	}
}

func TestNewFSReclaimsStaleStaging(t *testing.T) {
	root := t.TempDir()

	stale := filepath.Join(root, ".staging-alice-123")
	if err := os.Mkdir(stale, 0755); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}
	fresh := filepath.Join(root, ".staging-bob-456")
	if err := os.Mkdir(fresh, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFS(root); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Error("stale staging directory survived the open")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh staging directory must survive the open")
	}
}

func TestFSSweep(t *testing.T) {
	s := newFSStore(t)

	stale := filepath.Join(s.root, ".staging-alice-123")
	if err := os.Mkdir(stale, 0755); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}
	fresh := filepath.Join(s.root, ".staging-bob-456")
	if err := os.Mkdir(fresh, 0755); err != nil {
		t.Fatal(err)
	}

	if err := s.Sweep(time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Error("stale staging directory survived the sweep")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh staging directory must survive the sweep")
	}
}
