package ui

import (
	"context"
	"time"

	"ponto/console/internal/apiclient"
	"ponto/console/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 30 * time.Second

// navigateMsg asks the root to show path; the guard may redirect it.
type navigateMsg struct {
	Path   string
	Notice string
}

func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{Path: path} }
}

// sessionChangedMsg reports a login or logout done by another process.
type sessionChangedMsg struct{ Session session.Session }

// apiResult is embedded by every message that carries the outcome of an authenticated call.
type apiResult struct{ Err error }

func (r apiResult) failure() error { return r.Err }

type failer interface{ failure() error }

func errText(err error) string { return apiclient.Message(err) }

// call runs fn with a bounded context inside a tea.Cmd.
func call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return fn(ctx)
	}
}

// WatchSession forwards session file changes to p until ctx ends or stop is called.
func WatchSession(ctx context.Context, store *session.Store, p *tea.Program) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	if err := store.Watch(ctx, func(s session.Session) { p.Send(sessionChangedMsg{Session: s}) }); err != nil {
		cancel()
		return nil, err
	}
	return cancel, nil
}
