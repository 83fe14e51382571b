package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FS stores each user in a directory under the root, named by the
// lower-cased username, holding details.json, transactions.json and
// notes.json. This is the same layout the application has always used, so an
// existing data directory keeps working.
type FS struct {
	root string
}

// staleStagingAge is how old a staging directory must be before an open
// reclaims it. Anything younger may belong to a creation still in flight.
const staleStagingAge = time.Hour

// NewFS returns a filesystem store rooted at dir, creating it if needed.
// Opening also reclaims staging directories left behind by a crash.
func NewFS(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create data directory %q: %w", dir, err)
	}
	s := &FS{root: dir}
	if err := s.Sweep(staleStagingAge); err != nil {
		return nil, fmt.Errorf("could not sweep data directory %q: %w", dir, err)
	}
	return s, nil
}

func userKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *FS) userDir(username string) string {
	return filepath.Join(s.root, userKey(username))
}

func (s *FS) docPath(username string, kind Kind) string {
	return filepath.Join(s.userDir(username), string(kind)+".json")
}

func (s *FS) Get(_ context.Context, username string, kind Kind) ([]byte, error) {
	body, err := os.ReadFile(s.docPath(username, kind))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %s document for %q: %w", kind, username, err)
	}
	return body, nil
}

func (s *FS) Put(_ context.Context, username string, kind Kind, body []byte) error {
	dir := s.userDir(username)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", username, err)
	}
	// Write to a temporary file and rename so a reader never observes a
	// half-written document.
	tmp, err := os.CreateTemp(dir, "."+string(kind)+"-*")
	if err != nil {
		return fmt.Errorf("could not stage %s document for %q: %w", kind, username, err)
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write %s document for %q: %w", kind, username, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write %s document for %q: %w", kind, username, err)
	}
	if err := os.Rename(tmp.Name(), s.docPath(username, kind)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not save %s document for %q: %w", kind, username, err)
	}
	return nil
}

func (s *FS) CreateUser(_ context.Context, username string, docs map[Kind][]byte) error {
	key := userKey(username)
	dir := filepath.Join(s.root, key)
	if _, err := os.Stat(dir); err == nil {
		return ErrUserExists
	}

	// Stage the whole directory and rename it into place, so the user either
	// exists with every document or not at all.
	staging, err := os.MkdirTemp(s.root, ".staging-"+key+"-")
	if err != nil {
		return fmt.Errorf("could not stage user %q: %w", username, err)
	}
	defer os.RemoveAll(staging)

	for kind, body := range docs {
		path := filepath.Join(staging, string(kind)+".json")
		if err := os.WriteFile(path, body, 0644); err != nil {
			return fmt.Errorf("could not write %s document for %q: %w", kind, username, err)
		}
	}

	if err := os.Rename(staging, dir); err != nil {
		if _, statErr := os.Stat(dir); statErr == nil {
			return ErrUserExists
		}
		return fmt.Errorf("could not create user %q: %w", username, err)
	}
	return nil
}

func (s *FS) DeleteUser(_ context.Context, username string) error {
	if err := os.RemoveAll(s.userDir(username)); err != nil {
		return fmt.Errorf("could not delete user %q: %w", username, err)
	}
	return nil
}

func (s *FS) Exists(_ context.Context, username string) (bool, error) {
	_, err := os.Stat(s.docPath(username, KindProfile))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not stat user %q: %w", username, err)
	}
	return true, nil
}

func (s *FS) ListUsernames(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}
	var names []string
	for _, e := range entries {
		// Skip stale staging directories and anything else hidden.
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Sweep removes staging directories older than maxAge, left behind by a
// crashed creation.
func (s *FS) Sweep(maxAge time.Duration) error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return err
	}
	var errs error
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), ".staging-") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > maxAge {
			errs = errors.Join(errs, os.RemoveAll(filepath.Join(s.root, e.Name())))
		}
	}
	return errs
}

var _ Store = (*FS)(nil)
