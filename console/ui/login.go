package ui

import (
	"context"
	"errors"
	"strings"

	"ponto/console/internal/apiclient"
	"ponto/console/internal/guard"
	"ponto/console/internal/logger"
	"ponto/console/internal/session"
	"ponto/pkg/api"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	inputUsername = iota
	inputPassword
)

type LoginModel struct {
	client  *apiclient.Client
	store   *session.Store
	Form    form
	Err     error
	Loading bool
}

// loginResultMsg is not an apiResult: a 401 here means bad credentials.
type loginResultMsg struct {
	Username string
	Resp     *api.LoginResponse
	Err      error
}

func NewLoginModel(c *apiclient.Client, store *session.Store) LoginModel {
	return LoginModel{
		client: c.WithToken(""),
		store:  store,
		Form: newForm(
			field{Prompt: "Usuário: ", Placeholder: "usuario"},
			field{Prompt: "Senha: ", Placeholder: "senha", Secret: true},
		),
	}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			if !m.Form.last() {
				m.Form.next()
				return m, nil
			}
			if m.Loading {
				return m, nil
			}
			username, password := m.Form.value(inputUsername), m.Form.raw(inputPassword)
			if username == "" || password == "" {
				m.Err = errors.New("informe usuário e senha")
				return m, nil
			}
			m.Loading, m.Err = true, nil
			return m, m.loginCmd(username, password)
		}

	case loginResultMsg:
		m.Loading = false
		if msg.Err != nil {
			m.Err = errors.New(errText(msg.Err))
			return m, nil
		}
		sess := session.Session{Token: msg.Resp.AccessToken, Role: msg.Resp.Role, Username: msg.Username}
		if err := m.store.Save(sess); err != nil {
			m.Err = err
			return m, nil
		}
		logger.L.Info().Str("username", msg.Username).Str("role", string(msg.Resp.Role)).Msg("logged in")
		return m, navigate(guard.Home(msg.Resp.Role))
	}

	var cmd tea.Cmd
	m.Form, cmd = m.Form.update(msg)
	return m, cmd
}

func (m LoginModel) loginCmd(username, password string) tea.Cmd {
	c := m.client
	return call(func(ctx context.Context) tea.Msg {
		resp, err := c.Login(ctx, username, password)
		return loginResultMsg{Username: username, Resp: resp, Err: err}
	})
}

func (m LoginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sistema de Ponto - Login") + "\n\n")
	b.WriteString(m.Form.View())
	b.WriteString("\n\n")
	if m.Loading {
		b.WriteString(blurredStyle.Render("Entrando..."))
	} else {
		b.WriteString(blurredStyle.Render("Tab para trocar de campo, Enter para entrar"))
	}
	if m.Err != nil {
		b.WriteString("\n\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
