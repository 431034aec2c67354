package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ponto/console/internal/admin"
	"ponto/console/internal/apiclient"
	"ponto/pkg/api"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	filterUsuario = iota
	filterAno
	filterMes
	filterDia
)

const (
	manualUsuario = iota
	manualData
	manualEntrada
	manualSaidaAlmoco
	manualVoltaAlmoco
	manualSaida
	manualJustificativa
)

const (
	editTimestamp = iota
	editJustificativa
)

const timestampLayout = "2006-01-02 15:04"

// AdminRecordsModel filters, inserts, edits and deletes punch records of every user.
type AdminRecordsModel struct {
	client   *apiclient.Client
	Mode     mode
	Filter   form
	Table    table.Model
	Records  []api.PunchRecord
	Form     form
	Editing  *api.PunchRecord
	Manual   admin.ManualEntry
	Deleting api.PunchRecord
	Searched bool
	Loading  bool
	Status   string
	Err      string
}

type adminRecordsMsg struct {
	apiResult
	Records []api.PunchRecord
}

type recordSavedMsg struct {
	apiResult
	Msg string
}

func NewAdminRecordsModel(c *apiclient.Client, height int) AdminRecordsModel {
	now := time.Now()
	return AdminRecordsModel{
		client: c,
		Mode:   modeFilter,
		Filter: newForm(
			field{Prompt: "Funcionário (id): ", Placeholder: "todos"},
			field{Prompt: "Ano: ", Value: strconv.Itoa(now.Year())},
			field{Prompt: "Mês: ", Value: strconv.Itoa(int(now.Month()))},
			field{Prompt: "Dia: ", Placeholder: "mês inteiro"},
		),
		Table: newTable([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Funcionário", Width: 24},
			{Title: "Data", Width: 12},
			{Title: "Hora", Width: 6},
			{Title: "Tipo", Width: 14},
			{Title: "Justificativa", Width: 28},
		}, height-4),
	}
}

// Searching is explicit, so nothing is fetched on open.
func (m AdminRecordsModel) Init() tea.Cmd { return textinput.Blink }

// CurrentFilter parses the filter inputs; blank user and day stay absent.
func (m AdminRecordsModel) CurrentFilter() (admin.RecordFilter, error) {
	var f admin.RecordFilter
	var err error
	if f.UsuarioID, err = admin.ParseOptionalUint(m.Filter.value(filterUsuario)); err != nil {
		return f, errors.New("id de funcionário inválido")
	}
	if f.Ano, err = strconv.Atoi(m.Filter.value(filterAno)); err != nil || f.Ano < 1 {
		return f, errors.New("ano inválido")
	}
	if f.Mes, err = strconv.Atoi(m.Filter.value(filterMes)); err != nil || f.Mes < 1 || f.Mes > 12 {
		return f, errors.New("mês inválido")
	}
	if f.Dia, err = admin.ParseOptionalInt(m.Filter.value(filterDia)); err != nil {
		return f, errors.New("dia inválido")
	}
	return f, nil
}

func (m AdminRecordsModel) search() (AdminRecordsModel, tea.Cmd) {
	f, err := m.CurrentFilter()
	if err != nil {
		m.Err = err.Error()
		return m, nil
	}
	m.Loading, m.Err = true, ""
	c, q := m.client, f.Query()
	return m, call(func(ctx context.Context) tea.Msg {
		recs, err := c.ListRecords(ctx, q)
		return adminRecordsMsg{apiResult: apiResult{Err: err}, Records: recs}
	})
}

func (m AdminRecordsModel) selected() (api.PunchRecord, bool) {
	i := m.Table.Cursor()
	if i < 0 || i >= len(m.Records) {
		return api.PunchRecord{}, false
	}
	return m.Records[i], true
}

func (m *AdminRecordsModel) openManual() {
	f, _ := m.CurrentFilter()
	var uid, day string
	if f.UsuarioID != nil {
		uid = strconv.FormatUint(uint64(*f.UsuarioID), 10)
	}
	if f.Dia != nil && f.Ano > 0 && f.Mes > 0 {
		day = fmt.Sprintf("%04d-%02d-%02d", f.Ano, f.Mes, *f.Dia)
	}
	m.Editing = nil
	m.Form = newForm(
		field{Prompt: "Funcionário (id): ", Value: uid},
		field{Prompt: "Data (AAAA-MM-DD): ", Value: day},
		field{Prompt: "Entrada: ", Placeholder: "HH:MM"},
		field{Prompt: "Saída almoço: ", Placeholder: "HH:MM"},
		field{Prompt: "Volta almoço: ", Placeholder: "HH:MM"},
		field{Prompt: "Saída: ", Placeholder: "HH:MM"},
		field{Prompt: "Justificativa: "},
	)
	m.Mode, m.Err, m.Status = modeForm, "", ""
}

func (m *AdminRecordsModel) openEdit(r api.PunchRecord) {
	m.Editing = &r
	m.Form = newForm(
		field{Prompt: "Data/hora (AAAA-MM-DD HH:MM): ", Value: r.Timestamp.Format(timestampLayout)},
		field{Prompt: "Justificativa: ", Value: r.Justificativa},
	)
	m.Mode, m.Err, m.Status = modeForm, "", ""
}

func (m AdminRecordsModel) manualFromForm() (admin.ManualEntry, error) {
	uid, err := admin.ParseOptionalUint(m.Form.value(manualUsuario))
	if err != nil || uid == nil {
		return admin.ManualEntry{}, errors.New("informe o id do funcionário")
	}
	e := admin.ManualEntry{
		UsuarioID:     *uid,
		Data:          m.Form.value(manualData),
		Entrada:       m.Form.value(manualEntrada),
		SaidaAlmoco:   m.Form.value(manualSaidaAlmoco),
		VoltaAlmoco:   m.Form.value(manualVoltaAlmoco),
		Saida:         m.Form.value(manualSaida),
		Justificativa: m.Form.value(manualJustificativa),
	}
	if _, err := e.Payload(); err != nil {
		return e, err
	}
	return e, nil
}

func (m AdminRecordsModel) editRequest() (api.UpdateRecordRequest, error) {
	raw := m.Form.value(editTimestamp)
	ts, err := time.ParseInLocation(timestampLayout, raw, m.Editing.Timestamp.Location())
	if err != nil {
		return api.UpdateRecordRequest{}, errors.New("data/hora inválida, use AAAA-MM-DD HH:MM")
	}
	return api.UpdateRecordRequest{Timestamp: ts.Format(time.RFC3339), Justificativa: m.Form.value(editJustificativa)}, nil
}

func (m AdminRecordsModel) save() tea.Cmd {
	c := m.client
	if m.Editing != nil {
		id := m.Editing.ID
		req, err := m.editRequest()
		return call(func(ctx context.Context) tea.Msg {
			if err != nil {
				return recordSavedMsg{apiResult: apiResult{Err: err}}
			}
			msg, err := c.UpdateRecord(ctx, id, req)
			return recordSavedMsg{apiResult: apiResult{Err: err}, Msg: msg}
		})
	}
	req, err := m.Manual.Payload()
	return call(func(ctx context.Context) tea.Msg {
		if err != nil {
			return recordSavedMsg{apiResult: apiResult{Err: err}}
		}
		resp, err := c.CreateManualEntry(ctx, req)
		if err != nil {
			return recordSavedMsg{apiResult: apiResult{Err: err}}
		}
		return recordSavedMsg{Msg: resp.Msg}
	})
}

func (m AdminRecordsModel) remove(id uint) tea.Cmd {
	c := m.client
	return call(func(ctx context.Context) tea.Msg {
		msg, err := c.DeleteRecord(ctx, id)
		return recordSavedMsg{apiResult: apiResult{Err: err}, Msg: msg}
	})
}

func (m AdminRecordsModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case adminRecordsMsg:
		m.Loading = false
		if msg.Err != nil {
			m.Err = errText(msg.Err)
			return m, nil
		}
		m.Records, m.Searched = msg.Records, true
		m.Table.SetRows(recordRows(msg.Records, true))
		if m.Mode == modeFilter {
			m.Mode = modeList
		}
		return m, nil

	case recordSavedMsg:
		m.Loading = false
		if msg.Err != nil {
			m.Err = errText(msg.Err)
			return m, nil
		}
		m.Mode, m.Status = modeList, msg.Msg
		if m.Searched {
			return m.search()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AdminRecordsModel) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch m.Mode {
	case modeFilter:
		switch msg.Type {
		case tea.KeyEnter:
			return m.search()
		case tea.KeyEsc:
			m.Mode = modeList
			return m, nil
		}
		var cmd tea.Cmd
		m.Filter, cmd = m.Filter.update(msg)
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
			if m.Editing != nil {
				if _, err := m.editRequest(); err != nil {
					m.Err = err.Error()
					return m, nil
				}
			} else {
				e, err := m.manualFromForm()
				if err != nil {
					m.Err = err.Error()
					return m, nil
				}
				m.Manual = e
			}
			m.Err = ""
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
				return m, m.remove(m.Deleting.ID)
			}
			return m, m.save()
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
	case "/", "f":
		m.Mode = modeFilter
		return m, textinput.Blink
	case "n":
		m.openManual()
		return m, textinput.Blink
	case "e", "enter":
		if r, ok := m.selected(); ok {
			m.openEdit(r)
			return m, textinput.Blink
		}
	case "d", "delete":
		if r, ok := m.selected(); ok {
			m.Deleting = r
			m.Mode = modeConfirmDelete
		}
	case "r":
		return m.search()
	default:
		var cmd tea.Cmd
		m.Table, cmd = m.Table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AdminRecordsModel) confirmText() string {
	if m.Editing != nil {
		req, _ := m.editRequest()
		return fmt.Sprintf("Alterar o registro #%d (%s de %s) para %s?",
			m.Editing.ID, m.Editing.TipoRegistro.Label(), m.Editing.NomeCompleto, strings.Replace(req.Timestamp, "T", " ", 1))
	}
	return fmt.Sprintf("Lançar %d registro(s) para o funcionário #%d em %s?", m.Manual.Count(), m.Manual.UsuarioID, m.Manual.Data)
}

func (m AdminRecordsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Administração - Registros de Ponto") + "\n\n")
	switch m.Mode {
	case modeForm:
		title := "Lançamento manual"
		if m.Editing != nil {
			title = fmt.Sprintf("Editar registro #%d", m.Editing.ID)
		}
		b.WriteString(title + "\n\n" + m.Form.View() + "\n\n")
		b.WriteString(blurredStyle.Render("Tab troca de campo • Enter no último campo confirma • Esc cancela"))
	case modeConfirmSave:
		b.WriteString(confirmStyle.Render(m.confirmText()+"\n\n[s] confirmar  [n] voltar") + "\n")
	case modeConfirmDelete:
		r := m.Deleting
		b.WriteString(confirmStyle.Render(fmt.Sprintf("Excluir o registro #%d (%s de %s em %s)?\n\n[s] excluir  [n] cancelar",
			r.ID, r.TipoRegistro.Label(), r.NomeCompleto, r.Timestamp.Format("02/01/2006 15:04"))) + "\n")
	default:
		b.WriteString(m.Filter.View() + "\n\n")
		if m.Searched && len(m.Records) == 0 {
			b.WriteString(blurredStyle.Render("Nenhum registro encontrado.") + "\n\n")
		} else {
			b.WriteString(m.Table.View() + "\n\n")
		}
		if m.Mode == modeFilter {
			b.WriteString(blurredStyle.Render("Enter buscar • Esc ir para a tabela"))
		} else {
			b.WriteString(blurredStyle.Render("/ filtros • n lançamento manual • e editar • d excluir • r buscar de novo"))
		}
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
