// Package session persists the console's login (token and role) between runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ponto/console/internal/apiclient"
	"ponto/pkg/api"

	"github.com/fsnotify/fsnotify"
)

type Session struct {
	Token    string   `json:"user_token"`
	Role     api.Role `json:"user_role"`
	Username string   `json:"username,omitempty"`
}

func (s Session) Authenticated() bool { return s.Token != "" }

func (s Session) IsAdmin() bool { return s.Authenticated() && s.Role == api.RoleAdmin }

// Store keeps the session in a JSON file. Every Load reads the file again.
type Store struct {
	path string
}

func NewStore(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

// Load returns the empty session when nothing was saved yet.
func (s *Store) Load() (Session, error) {
	var sess Session
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return sess, nil
	}
	if err != nil {
		return sess, fmt.Errorf("read session: %w", err)
	}
	if len(b) == 0 {
		return sess, nil
	}
	if err := json.Unmarshal(b, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir session dir: %w", err)
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Watch calls fn with the reloaded session whenever another process logs in or out.
// It returns once the watcher is running; the watcher stops with ctx.
func (s *Store) Watch(ctx context.Context, fn func(Session)) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir session dir: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return err
	}
	name := filepath.Clean(s.path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != name {
					continue
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if sess, err := s.Load(); err == nil {
					fn(sess)
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

// Unauthorized clears the store when err is a 401 from the API and reports whether it did.
func Unauthorized(store *Store, err error) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	_ = store.Clear()
	return true
}
