package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ponto/console/internal/apiclient"
	"ponto/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	return NewStore(filepath.Join(t.TempDir(), "ponto", "session.json"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newStore(t)
	sess, err := s.Load()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
	assert.False(t, sess.IsAdmin())
}

func TestSaveLoadClear(t *testing.T) {
	s := newStore(t)
	want := Session{Token: "abc", Role: api.RoleAdmin, Username: "admin"}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.IsAdmin())

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Clear())
	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
	assert.NoError(t, s.Clear())
}

func TestStoredKeys(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(Session{Token: "abc", Role: api.RoleFuncionario}))
	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"user_token":"abc"`)
	assert.Contains(t, string(b), `"user_role":"funcionario"`)
}

func TestLoadCorruptFile(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))
	_, err := s.Load()
	assert.Error(t, err)
}

func TestUnauthorizedClearsOnlyOn401(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(Session{Token: "abc", Role: api.RoleAdmin}))

	assert.False(t, Unauthorized(s, &apiclient.Error{Status: 500, Msg: "falhou"}))
	assert.False(t, Unauthorized(s, errors.New("rede")))
	sess, _ := s.Load()
	assert.True(t, sess.Authenticated())

	assert.True(t, Unauthorized(s, &apiclient.Error{Status: 401}))
	sess, _ = s.Load()
	assert.False(t, sess.Authenticated())
}

func TestWatchReportsExternalLogout(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(Session{Token: "abc", Role: api.RoleAdmin}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []Session
	require.NoError(t, s.Watch(ctx, func(sess Session) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, sess)
	}))

	other := NewStore(s.Path())
	require.NoError(t, other.Clear())

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && !seen[len(seen)-1].Authenticated()
	}, 2*time.Second, 20*time.Millisecond)
}
