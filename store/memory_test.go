package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.CreateUser(ctx, "Alice", sampleDocs()); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateUser(ctx, "alice ", sampleDocs()); !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists on the folded collision, got %v", err)
	}

	body, err := s.Get(ctx, "ALICE", KindProfile)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"name":"alice"}` {
		t.Errorf("profile body = %s", body)
	}

	if _, err := s.Get(ctx, "alice", Kind("other")); !errors.Is(err, ErrNotExist) {
		t.Errorf("expected ErrNotExist for an unknown kind, got %v", err)
	}
	if _, err := s.Get(ctx, "nobody", KindProfile); !errors.Is(err, ErrNotExist) {
		t.Errorf("expected ErrNotExist for an unknown user, got %v", err)
	}
}

func TestMemoryCopiesDocuments(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	body := []byte(`[1]`)
	if err := s.Put(ctx, "alice", KindNotes, body); err != nil {
		t.Fatal(err)
	}
	body[1] = '9'

	got, err := s.Get(ctx, "alice", KindNotes)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[1]` {
		t.Errorf("stored document aliased the caller's slice: %s", got)
	}

	got[1] = '8'
	again, err := s.Get(ctx, "alice", KindNotes)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != `[1]` {
		t.Errorf("returned document aliased the stored slice: %s", again)
	}
}

func TestMemoryListAndDelete(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for _, name := range []string{"bob", "Alice"} {
		if err := s.CreateUser(ctx, name, sampleDocs()); err != nil {
			t.Fatal(err)
		}
	}

	names, err := s.ListUsernames(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
		t.Errorf("names = %v, want the folded [alice bob]", names)
	}

	if err := s.DeleteUser(ctx, "ALICE"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Exists(ctx, "alice"); ok {
		t.Error("alice still exists after delete")
	}
	if err := s.DeleteUser(ctx, "alice"); err != nil {
		t.Errorf("second delete failed: %v", err)
	}
}
