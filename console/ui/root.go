package ui

import (
	"strings"

	"ponto/console/internal/apiclient"
	"ponto/console/internal/guard"
	"ponto/console/internal/logger"
	"ponto/console/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// screen is one routed page of the console.
type screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (screen, tea.Cmd)
	View() string
}

// RootModel owns routing. The guard is re-evaluated from the session file on every navigation.
type RootModel struct {
	client   *apiclient.Client
	store    *session.Store
	Path     string
	Screen   screen
	Notice   string
	Quitting bool
	admin    bool
	width    int
	height   int
}

func NewRootModel(client *apiclient.Client, store *session.Store) RootModel {
	m := RootModel{client: client, store: store, width: 100, height: 30}
	sess, _ := store.Load()
	start := guard.Login
	if sess.Authenticated() {
		start = guard.Home(sess.Role)
	}
	m.open(start)
	return m
}

func (m *RootModel) open(path string) {
	sess, err := m.store.Load()
	if err != nil {
		logger.L.Error().Err(err).Msg("load session")
		sess = session.Session{}
	}
	m.Path = guard.Resolve(path, sess)
	m.admin = sess.IsAdmin()
	c := m.client.WithToken(sess.Token)
	h := m.height - 12
	if h < 5 {
		h = 5
	}
	switch m.Path {
	case guard.Punch:
		m.Screen = NewPunchModel(c)
	case guard.MyRecords:
		m.Screen = NewRecordsModel(c, h)
	case guard.AdminUsers:
		m.Screen = NewUsersModel(c, h)
	case guard.AdminRecords:
		m.Screen = NewAdminRecordsModel(c, h)
	case guard.AdminReport:
		m.Screen = NewReportModel(c)
	default:
		m.Screen = NewLoginModel(c, m.store)
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Screen.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.Quitting = true
			return m, tea.Quit
		case tea.KeyF1:
			return m.goTo(guard.Punch, "")
		case tea.KeyF2:
			return m.goTo(guard.MyRecords, "")
		case tea.KeyF3:
			return m.goTo(guard.AdminUsers, "")
		case tea.KeyF4:
			return m.goTo(guard.AdminRecords, "")
		case tea.KeyF5:
			return m.goTo(guard.AdminReport, "")
		case tea.KeyCtrlL:
			_ = m.store.Clear()
			return m.goTo(guard.Login, "Sessão encerrada.")
		}

	case navigateMsg:
		return m.goTo(msg.Path, msg.Notice)

	case sessionChangedMsg:
		if want := guard.Resolve(m.Path, msg.Session); want != m.Path {
			return m.goTo(m.Path, "Sessão alterada em outro terminal.")
		}
		return m, nil
	}

	if f, ok := msg.(failer); ok && session.Unauthorized(m.store, f.failure()) {
		logger.L.Warn().Str("path", m.Path).Msg("session rejected by server, cleared")
		return m.goTo(guard.Login, "Sua sessão expirou. Faça login novamente.")
	}

	var cmd tea.Cmd
	m.Screen, cmd = m.Screen.Update(msg)
	return m, cmd
}

// goTo navigates and starts the new screen.
func (m RootModel) goTo(path, notice string) (tea.Model, tea.Cmd) {
	m.open(path)
	m.Notice = notice
	if m.Path != path && notice == "" {
		m.Notice = "Acesso negado: redirecionado."
	}
	return m, m.Screen.Init()
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Até logo!\n"
	}
	var b strings.Builder
	b.WriteString(m.Screen.View())
	if m.Notice != "" {
		b.WriteString("\n\n" + blurredStyle.Render(m.Notice))
	}
	if m.Path != guard.Login {
		nav := "F1 ponto • F2 meus registros • ctrl+l sair • ctrl+c fechar"
		if m.admin {
			nav = "F1 ponto • F2 meus registros • F3 usuários • F4 registros • F5 relatório • ctrl+l sair • ctrl+c fechar"
		}
		b.WriteString("\n\n" + blurredStyle.Render(nav))
	}
	return docStyle.Render(b.String())
}
