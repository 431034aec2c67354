package ui

import (
	"context"
	"strings"

	"ponto/console/internal/apiclient"
	"ponto/console/internal/punch"
	"ponto/pkg/api"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PunchModel is the four-button punch panel.
type PunchModel struct {
	client  *apiclient.Client
	Board   *punch.Board
	Name    string
	Cursor  int
	Loading bool
	Status  string
	Err     string
}

type todayMsg struct {
	apiResult
	Today *api.TodayResponse
}

type punchResultMsg struct {
	apiResult
	Tipo  api.PunchType
	Msg   string
	Today []api.PunchType
}

func NewPunchModel(c *apiclient.Client) PunchModel {
	return PunchModel{client: c, Board: punch.NewBoard(c, nil), Loading: true}
}

func (m PunchModel) Init() tea.Cmd { return m.fetchToday() }

func (m PunchModel) fetchToday() tea.Cmd {
	c := m.client
	return call(func(ctx context.Context) tea.Msg {
		t, err := c.Today(ctx)
		return todayMsg{apiResult: apiResult{Err: err}, Today: t}
	})
}

// register works on a copy of the board so the model is only touched in Update.
func (m PunchModel) register(t api.PunchType) tea.Cmd {
	b := punch.NewBoard(m.client, m.Board.Today())
	return call(func(ctx context.Context) tea.Msg {
		msg, err := b.Register(ctx, t)
		return punchResultMsg{apiResult: apiResult{Err: err}, Tipo: t, Msg: msg, Today: b.Today()}
	})
}

func (m PunchModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case todayMsg:
		m.Loading = false
		if msg.Err != nil {
			m.Err = errText(msg.Err)
			return m, nil
		}
		m.Name = msg.Today.NomeCompleto
		m.Board.Reset(msg.Today.RegistrosHoje)

	case punchResultMsg:
		m.Loading = false
		if msg.Err != nil {
			m.Err, m.Status = errText(msg.Err), ""
			return m, nil
		}
		m.Board.Reset(msg.Today)
		m.Status, m.Err = msg.Msg, ""

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.Cursor = (m.Cursor + len(api.PunchTypes) - 1) % len(api.PunchTypes)
		case "right", "l", "tab":
			m.Cursor = (m.Cursor + 1) % len(api.PunchTypes)
		case "r":
			m.Loading = true
			return m, m.fetchToday()
		case "enter", " ":
			t := api.PunchTypes[m.Cursor]
			if m.Loading || !m.Board.IsAvailable(t) {
				return m, nil
			}
			m.Loading = true
			return m, m.register(t)
		}
	}
	return m, nil
}

func (m PunchModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Registro de Ponto") + "\n\n")
	if m.Name != "" {
		b.WriteString("Olá, " + m.Name + "!\n\n")
	}
	buttons := make([]string, 0, len(api.PunchTypes))
	for i, t := range api.PunchTypes {
		label := t.Label()
		style := buttonStyle
		if !m.Board.IsAvailable(t) {
			label = usedStyle.Render("✔ " + label)
		} else if i == m.Cursor {
			style = activeButtonStyle
		}
		buttons = append(buttons, style.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	b.WriteString("\n\n")
	switch {
	case m.Loading:
		b.WriteString(blurredStyle.Render("Aguarde..."))
	case m.Err != "":
		b.WriteString(errorMessageStyle(m.Err))
	case m.Status != "":
		b.WriteString(statusMessageStyle(m.Status))
	}
	b.WriteString("\n" + blurredStyle.Render("←/→ escolher • Enter registrar • r recarregar"))
	return b.String()
}
