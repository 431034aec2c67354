package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ponto/console/internal/apiclient"
	"ponto/pkg/api"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// RecordsModel lists the logged-in user's punches for one month.
type RecordsModel struct {
	client  *apiclient.Client
	Form    form
	Table   table.Model
	Records []api.PunchRecord
	Loading bool
	Err     string
}

type myRecordsMsg struct {
	apiResult
	Records []api.PunchRecord
}

func NewRecordsModel(c *apiclient.Client, height int) RecordsModel {
	now := time.Now()
	return RecordsModel{
		client: c,
		Form: newForm(
			field{Prompt: "Mês: ", Value: strconv.Itoa(int(now.Month()))},
			field{Prompt: "Ano: ", Value: strconv.Itoa(now.Year())},
		),
		Table: newTable([]table.Column{
			{Title: "Data", Width: 12},
			{Title: "Hora", Width: 6},
			{Title: "Tipo", Width: 14},
			{Title: "Justificativa", Width: 36},
		}, height),
		Loading: true,
	}
}

func (m RecordsModel) Init() tea.Cmd {
	mes, ano, _ := m.month()
	return m.fetch(mes, ano)
}

func (m RecordsModel) month() (int, int, error) {
	mes, err := strconv.Atoi(m.Form.value(0))
	if err != nil || mes < 1 || mes > 12 {
		return 0, 0, fmt.Errorf("mês inválido")
	}
	ano, err := strconv.Atoi(m.Form.value(1))
	if err != nil || ano < 1 {
		return 0, 0, fmt.Errorf("ano inválido")
	}
	return mes, ano, nil
}

func (m RecordsModel) fetch(mes, ano int) tea.Cmd {
	c := m.client
	return call(func(ctx context.Context) tea.Msg {
		recs, err := c.MyRecords(ctx, mes, ano)
		return myRecordsMsg{apiResult: apiResult{Err: err}, Records: recs}
	})
}

func (m RecordsModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case myRecordsMsg:
		m.Loading = false
		if msg.Err != nil {
			m.Err = errText(msg.Err)
			return m, nil
		}
		m.Err = ""
		m.Records = msg.Records
		m.Table.SetRows(recordRows(msg.Records, false))
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			mes, ano, err := m.month()
			if err != nil {
				m.Err = err.Error()
				return m, nil
			}
			m.Loading = true
			return m, m.fetch(mes, ano)
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.Table, cmd = m.Table.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.Form, cmd = m.Form.update(msg)
	return m, cmd
}

func recordRows(recs []api.PunchRecord, withUser bool) []table.Row {
	rows := make([]table.Row, 0, len(recs))
	for _, r := range recs {
		// shown in the offset the server sent, which is the zone it files days under
		row := table.Row{r.Timestamp.Format("02/01/2006"), r.Timestamp.Format("15:04"), r.TipoRegistro.Label(), r.Justificativa}
		if withUser {
			row = append(table.Row{strconv.FormatUint(uint64(r.ID), 10), r.NomeCompleto}, row...)
		}
		rows = append(rows, row)
	}
	return rows
}

func (m RecordsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Meus Registros") + "\n\n")
	b.WriteString(m.Form.View() + "\n\n")
	if len(m.Records) == 0 && !m.Loading {
		b.WriteString(blurredStyle.Render("Nenhum registro neste mês.") + "\n")
	} else {
		b.WriteString(m.Table.View() + "\n")
	}
	if m.Loading {
		b.WriteString(blurredStyle.Render("Carregando...") + "\n")
	}
	if m.Err != "" {
		b.WriteString(errorMessageStyle(m.Err) + "\n")
	}
	b.WriteString(blurredStyle.Render("Tab troca de campo • Enter buscar • PgUp/PgDn rolar"))
	return b.String()
}
