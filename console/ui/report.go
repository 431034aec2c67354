package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"ponto/console/internal/admin"
	"ponto/console/internal/apiclient"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ReportModel downloads the monthly workbook to a local file.
type ReportModel struct {
	client  *apiclient.Client
	Form    form
	Loading bool
	Status  string
	Err     string
}

type reportSavedMsg struct {
	apiResult
	Path string
}

func NewReportModel(c *apiclient.Client) ReportModel {
	now := time.Now()
	return ReportModel{
		client: c,
		Form: newForm(
			field{Prompt: "Ano: ", Value: strconv.Itoa(now.Year())},
			field{Prompt: "Mês: ", Value: strconv.Itoa(int(now.Month()))},
			field{Prompt: "Funcionário (id): ", Placeholder: "todos"},
			field{Prompt: "Salvar em: ", Placeholder: "relatorio_AAAA_MM.xlsx"},
		),
	}
}

func (m ReportModel) Init() tea.Cmd { return textinput.Blink }

func (m ReportModel) export() (ReportModel, tea.Cmd) {
	ano, err := strconv.Atoi(m.Form.value(0))
	if err != nil || ano < 1 {
		m.Err = "ano inválido"
		return m, nil
	}
	mes, err := strconv.Atoi(m.Form.value(1))
	if err != nil || mes < 1 || mes > 12 {
		m.Err = "mês inválido"
		return m, nil
	}
	uid, err := admin.ParseOptionalUint(m.Form.value(2))
	if err != nil {
		m.Err = "id de funcionário inválido"
		return m, nil
	}
	out := m.Form.value(3)
	q := admin.RecordFilter{UsuarioID: uid, Ano: ano, Mes: mes}.ReportQuery()
	c := m.client
	m.Loading, m.Err, m.Status = true, "", ""
	return m, call(func(ctx context.Context) tea.Msg {
		data, name, err := c.DownloadReport(ctx, q)
		if err != nil {
			return reportSavedMsg{apiResult: apiResult{Err: err}}
		}
		path, err := admin.SaveReport(data, name, out, ano, mes)
		return reportSavedMsg{apiResult: apiResult{Err: err}, Path: path}
	})
}

func (m ReportModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportSavedMsg:
		m.Loading = false
		if msg.Err != nil {
			var apiErr *apiclient.Error
			if errors.As(msg.Err, &apiErr) {
				m.Err = errText(msg.Err)
			} else {
				m.Err = msg.Err.Error()
			}
			return m, nil
		}
		m.Status = "Relatório salvo em " + msg.Path
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			if !m.Form.last() {
				m.Form.next()
				return m, nil
			}
			if m.Loading {
				return m, nil
			}
			return m.export()
		}
	}
	var cmd tea.Cmd
	m.Form, cmd = m.Form.update(msg)
	return m, cmd
}

func (m ReportModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Administração - Relatório") + "\n\n")
	b.WriteString(m.Form.View() + "\n\n")
	b.WriteString(blurredStyle.Render("Tab troca de campo • Enter no último campo exporta"))
	if m.Loading {
		b.WriteString("\n" + blurredStyle.Render("Gerando relatório..."))
	}
	if m.Err != "" {
		b.WriteString("\n" + errorMessageStyle(m.Err))
	} else if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	return b.String()
}
