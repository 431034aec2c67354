package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ponto/console/internal/admin"
	"ponto/console/internal/apiclient"
	"ponto/pkg/api"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeList mode = iota
	modeFilter
	modeForm
	modeConfirmSave
	modeConfirmDelete
)

const (
	userNome = iota
	userUsername
	userPassword
	userRole
)

// UsersModel is the admin account manager.
type UsersModel struct {
	client   *apiclient.Client
	Mode     mode
	Users    []api.User
	Visible  []api.User
	Table    table.Model
	Filter   textinput.Model
	Form     form
	Editing  admin.UserForm
	Deleting api.User
	Loading  bool
	Status   string
	Err      string
}

type usersLoadedMsg struct {
	apiResult
	Users []api.User
}

type userSavedMsg struct {
	apiResult
	Msg string
}

func NewUsersModel(c *apiclient.Client, height int) UsersModel {
	filter := textinput.New()
	filter.Prompt = "Filtrar: "
	filter.Placeholder = "nome ou usuário"
	return UsersModel{
		client: c,
		Table: newTable([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Nome completo", Width: 32},
			{Title: "Usuário", Width: 18},
			{Title: "Perfil", Width: 12},
		}, height),
		Filter:  filter,
		Loading: true,
	}
}

func (m UsersModel) Init() tea.Cmd { return m.reload() }

func (m UsersModel) reload() tea.Cmd {
	c := m.client
	return call(func(ctx context.Context) tea.Msg {
		users, err := c.ListUsers(ctx)
		return usersLoadedMsg{apiResult: apiResult{Err: err}, Users: users}
	})
}

func (m *UsersModel) applyFilter() {
	m.Visible = admin.FilterUsers(m.Users, m.Filter.Value())
	rows := make([]table.Row, 0, len(m.Visible))
	for _, u := range m.Visible {
		rows = append(rows, table.Row{strconv.FormatUint(uint64(u.ID), 10), u.NomeCompleto, u.Username, string(u.Role)})
	}
	m.Table.SetRows(rows)
}

func (m UsersModel) selected() (api.User, bool) {
	i := m.Table.Cursor()
	if i < 0 || i >= len(m.Visible) {
		return api.User{}, false
	}
	return m.Visible[i], true
}

func (m *UsersModel) openForm(f admin.UserForm) {
	role := string(f.Role)
	if role == "" {
		role = string(api.RoleFuncionario)
	}
	pass := field{Prompt: "Senha: ", Secret: true, Placeholder: "obrigatória"}
	if f.ID != 0 {
		pass.Placeholder = "deixe em branco para manter"
	}
	m.Editing = f
	m.Form = newForm(
		field{Prompt: "Nome completo: ", Value: f.NomeCompleto},
		field{Prompt: "Usuário: ", Value: f.Username},
		pass,
		field{Prompt: "Perfil (funcionario|admin): ", Value: role},
	)
	m.Mode, m.Err, m.Status = modeForm, "", ""
}

func (m UsersModel) formValues() admin.UserForm {
	f := m.Editing
	f.NomeCompleto = m.Form.value(userNome)
	f.Username = m.Form.value(userUsername)
	f.Password = m.Form.raw(userPassword)
	f.Role = api.Role(strings.ToLower(m.Form.value(userRole)))
	return f
}

func (m UsersModel) submit() tea.Cmd {
	c, f := m.client, m.Editing
	return call(func(ctx context.Context) tea.Msg {
		var (
			msg string
			err error
		)
		if f.ID == 0 {
			req, perr := f.CreatePayload()
			if perr != nil {
				return userSavedMsg{apiResult: apiResult{Err: perr}}
			}
			msg, err = c.CreateUser(ctx, req)
		} else {
			req, perr := f.UpdatePayload()
			if perr != nil {
				return userSavedMsg{apiResult: apiResult{Err: perr}}
			}
			msg, err = c.UpdateUser(ctx, f.ID, req)
		}
		return userSavedMsg{apiResult: apiResult{Err: err}, Msg: msg}
	})
}

func (m UsersModel) remove(u api.User) tea.Cmd {
	c := m.client
	return call(func(ctx context.Context) tea.Msg {
		msg, err := c.DeleteUser(ctx, u.ID)
		return userSavedMsg{apiResult: apiResult{Err: err}, Msg: msg}
	})
}

func (m UsersModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.Loading = false
		if msg.Err != nil {
			m.Err = errText(msg.Err)
			return m, nil
		}
		m.Users = msg.Users
		m.applyFilter()
		return m, nil

	case userSavedMsg:
		m.Loading = false
		if msg.Err != nil {
			m.Err = errText(msg.Err)
			return m, nil
		}
		m.Mode, m.Status, m.Err = modeList, msg.Msg, ""
		m.Loading = true
		return m, m.reload()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m UsersModel) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch m.Mode {
	case modeFilter:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.Filter.Blur()
			m.Mode = modeList
			return m, nil
		}
		var cmd tea.Cmd
		m.Filter, cmd = m.Filter.Update(msg)
		m.applyFilter()
		return m, cmd

	case modeForm:
		switch msg.Type {
		case tea.KeyEsc:
			m.Mode = modeList
			return m, nil
		case tea.KeyEnter:
			if !m.Form.last() {
				m.Form.next()
				return m, nil
			}
			f := m.formValues()
			var err error
			if f.ID == 0 {
				_, err = f.CreatePayload()
			} else {
				_, err = f.UpdatePayload()
			}
			if err != nil {
				m.Err = err.Error()
				return m, nil
			}
			m.Editing, m.Err = f, ""
			m.Mode = modeConfirmSave
			return m, nil
		}
		var cmd tea.Cmd
		m.Form, cmd = m.Form.update(msg)
		return m, cmd

	case modeConfirmSave, modeConfirmDelete:
		switch msg.String() {
		case "y", "s":
			m.Loading = true
			if m.Mode == modeConfirmDelete {
				return m, m.remove(m.Deleting)
			}
			return m, m.submit()
		case "n", "esc":
			if m.Mode == modeConfirmSave {
				m.Mode = modeForm
			} else {
				m.Mode = modeList
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "/":
		m.Mode = modeFilter
		return m, m.Filter.Focus()
	case "n":
		m.openForm(admin.UserForm{})
		return m, textinput.Blink
	case "e", "enter":
		if u, ok := m.selected(); ok {
			m.openForm(admin.FormFromUser(u))
			return m, textinput.Blink
		}
	case "d", "delete":
		if u, ok := m.selected(); ok {
			m.Deleting = u
			m.Mode = modeConfirmDelete
		}
	case "r":
		m.Loading = true
		return m, m.reload()
	default:
		var cmd tea.Cmd
		m.Table, cmd = m.Table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m UsersModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Administração - Usuários") + "\n\n")
	switch m.Mode {
	case modeForm:
		title := "Novo usuário"
		if m.Editing.ID != 0 {
			title = fmt.Sprintf("Editar usuário #%d", m.Editing.ID)
		}
		b.WriteString(title + "\n\n" + m.Form.View() + "\n\n")
		b.WriteString(blurredStyle.Render("Tab troca de campo • Enter no último campo confirma • Esc cancela"))
	case modeConfirmSave:
		b.WriteString(confirmStyle.Render(m.Editing.Summary()+"\n\n[s] confirmar  [n] voltar") + "\n")
	case modeConfirmDelete:
		u := m.Deleting
		b.WriteString(confirmStyle.Render(fmt.Sprintf("Excluir %s (%s) e todos os seus registros?\nEsta ação não pode ser desfeita.\n\n[s] excluir  [n] cancelar", u.NomeCompleto, u.Username)) + "\n")
	default:
		b.WriteString(m.Filter.View() + "\n\n")
		b.WriteString(m.Table.View() + "\n\n")
		b.WriteString(blurredStyle.Render("/ filtrar • n novo • e editar • d excluir • r recarregar"))
	}
	if m.Loading {
		b.WriteString("\n" + blurredStyle.Render("Aguarde..."))
	}
	if m.Err != "" {
		b.WriteString("\n" + errorMessageStyle(m.Err))
	} else if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	return b.String()
}
