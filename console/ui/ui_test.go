package ui

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"ponto/console/internal/admin"
	"ponto/console/internal/apiclient"
	"ponto/console/internal/guard"
	"ponto/console/internal/session"
	"ponto/pkg/api"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T, sess *session.Session) (RootModel, *session.Store) {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if sess != nil {
		require.NoError(t, store.Save(*sess))
	}
	c := apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1"})
	return NewRootModel(c, store), store
}

func update(m tea.Model, msg tea.Msg) RootModel {
	next, _ := m.Update(msg)
	return next.(RootModel)
}

func key(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestRootStartsAtLoginWithoutSession(t *testing.T) {
	m, _ := newRoot(t, nil)
	assert.Equal(t, guard.Login, m.Path)
	assert.IsType(t, LoginModel{}, m.Screen)
}

func TestRootStartsAtHome(t *testing.T) {
	m, _ := newRoot(t, &session.Session{Token: "t", Role: api.RoleAdmin})
	assert.Equal(t, guard.AdminUsers, m.Path)

	m, _ = newRoot(t, &session.Session{Token: "t", Role: api.RoleFuncionario})
	assert.Equal(t, guard.Punch, m.Path)
}

func TestEmployeeRedirectedFromAdmin(t *testing.T) {
	m, _ := newRoot(t, &session.Session{Token: "t", Role: api.RoleFuncionario, Username: "joao"})
	m = update(m, navigateMsg{Path: guard.AdminUsers})
	assert.Equal(t, guard.Punch, m.Path)
	assert.NotEmpty(t, m.Notice)

	m = update(m, tea.KeyMsg{Type: tea.KeyF4})
	assert.Equal(t, guard.Punch, m.Path)
}

func TestAdminReachesAdminScreens(t *testing.T) {
	m, _ := newRoot(t, &session.Session{Token: "t", Role: api.RoleAdmin, Username: "admin"})
	m = update(m, tea.KeyMsg{Type: tea.KeyF4})
	assert.Equal(t, guard.AdminRecords, m.Path)
	m = update(m, tea.KeyMsg{Type: tea.KeyF5})
	assert.Equal(t, guard.AdminReport, m.Path)
}

func TestUnauthorizedResponseLogsOut(t *testing.T) {
	m, store := newRoot(t, &session.Session{Token: "t", Role: api.RoleFuncionario})
	m = update(m, todayMsg{apiResult: apiResult{Err: &apiclient.Error{Status: 401}}})
	assert.Equal(t, guard.Login, m.Path)
	sess, err := store.Load()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestOtherErrorsStayOnScreen(t *testing.T) {
	m, store := newRoot(t, &session.Session{Token: "t", Role: api.RoleFuncionario})
	m = update(m, todayMsg{apiResult: apiResult{Err: &apiclient.Error{Status: 500, Msg: "falha"}}})
	assert.Equal(t, guard.Punch, m.Path)
	assert.Equal(t, "falha", m.Screen.(PunchModel).Err)
	sess, _ := store.Load()
	assert.True(t, sess.Authenticated())
}

func TestExternalLogoutRedirects(t *testing.T) {
	m, _ := newRoot(t, &session.Session{Token: "t", Role: api.RoleAdmin})
	m = update(m, sessionChangedMsg{Session: session.Session{}})
	assert.Equal(t, guard.Login, m.Path)
}

func TestLogoutKey(t *testing.T) {
	m, store := newRoot(t, &session.Session{Token: "t", Role: api.RoleAdmin})
	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, guard.Login, m.Path)
	sess, _ := store.Load()
	assert.False(t, sess.Authenticated())
}

func TestPunchPanelDisablesUsedTypes(t *testing.T) {
	c := apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1"})
	var s screen = NewPunchModel(c)
	s, _ = s.Update(todayMsg{Today: &api.TodayResponse{NomeCompleto: "Joao", RegistrosHoje: []api.PunchType{api.Entrada}}})
	p := s.(PunchModel)
	assert.False(t, p.Board.IsAvailable(api.Entrada))
	assert.Contains(t, p.View(), "✔ Entrada")

	s, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "used type must not be sent")

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRight})
	s, cmd = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.True(t, s.(PunchModel).Loading)

	s, _ = s.Update(punchResultMsg{Tipo: api.SaidaAlmoco, Msg: "ok", Today: []api.PunchType{api.Entrada, api.SaidaAlmoco}})
	p = s.(PunchModel)
	assert.Equal(t, "ok", p.Status)
	assert.Equal(t, []api.PunchType{api.VoltaAlmoco, api.Saida}, p.Board.Available())
}

func TestUserFormBlocksBlankPasswordOnCreate(t *testing.T) {
	c := apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1"})
	var s screen = NewUsersModel(c, 10)
	s, _ = s.Update(key("n"))
	u := s.(UsersModel)
	require.Equal(t, modeForm, u.Mode)

	u.Form.Inputs[userNome].SetValue("Ana Lima")
	u.Form.Inputs[userUsername].SetValue("ana")
	u.Form.focus(userRole)
	s, _ = u.Update(tea.KeyMsg{Type: tea.KeyEnter})
	u = s.(UsersModel)
	assert.Equal(t, modeForm, u.Mode)
	assert.Equal(t, admin.ErrPasswordRequired.Error(), u.Err)

	u.Form.Inputs[userPassword].SetValue("segredo")
	s, _ = u.Update(tea.KeyMsg{Type: tea.KeyEnter})
	u = s.(UsersModel)
	assert.Equal(t, modeConfirmSave, u.Mode)
	assert.Contains(t, u.View(), "Criar usuário Ana Lima")
}

func TestUserFilter(t *testing.T) {
	c := apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1"})
	var s screen = NewUsersModel(c, 10)
	s, _ = s.Update(usersLoadedMsg{Users: []api.User{
		{ID: 1, NomeCompleto: "Leonardo Barros", Username: "Leonardo"},
		{ID: 2, NomeCompleto: "Isis Valentina", Username: "Isis"},
	}})
	s, _ = s.Update(key("/"))
	s, _ = s.Update(key("isis"))
	u := s.(UsersModel)
	require.Len(t, u.Visible, 1)
	assert.Equal(t, uint(2), u.Visible[0].ID)
}

func TestAdminRecordsFilterIsPullBased(t *testing.T) {
	c := apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1"})
	m := NewAdminRecordsModel(c, 10)
	assert.Equal(t, modeFilter, m.Mode)

	m.Filter.Inputs[filterUsuario].SetValue("7")
	m.Filter.Inputs[filterAno].SetValue("2025")
	m.Filter.Inputs[filterMes].SetValue("3")

	f, err := m.CurrentFilter()
	require.NoError(t, err)
	q := f.Query()
	assert.Equal(t, "7", q.Get("usuario_id"))
	assert.NotContains(t, q, "dia")

	s, _ := m.Update(key("1"))
	assert.False(t, s.(AdminRecordsModel).Loading, "typing must not search")

	s, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.True(t, s.(AdminRecordsModel).Loading)
}

func TestManualEntryNeedsATime(t *testing.T) {
	c := apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1"})
	m := NewAdminRecordsModel(c, 10)
	m.Mode = modeList
	s, _ := m.Update(key("n"))
	r := s.(AdminRecordsModel)
	require.Equal(t, modeForm, r.Mode)

	r.Form.Inputs[manualUsuario].SetValue("7")
	r.Form.Inputs[manualData].SetValue("2025-03-10")
	r.Form.focus(manualJustificativa)
	s, _ = r.Update(tea.KeyMsg{Type: tea.KeyEnter})
	r = s.(AdminRecordsModel)
	assert.Equal(t, admin.ErrNoTimes.Error(), r.Err)

	r.Form.Inputs[manualEntrada].SetValue("08:00")
	r.Form.Inputs[manualSaida].SetValue("17:00")
	s, _ = r.Update(tea.KeyMsg{Type: tea.KeyEnter})
	r = s.(AdminRecordsModel)
	assert.Equal(t, modeConfirmSave, r.Mode)
	assert.Equal(t, 2, r.Manual.Count())
	assert.Contains(t, r.View(), "Lançar 2 registro(s)")
}

func serverRecord(t *testing.T) api.PunchRecord {
	t.Helper()
	var r api.PunchRecord
	raw := `{"id":4,"usuario_id":2,"nome_completo":"Joao","timestamp":"2025-03-10T22:30:00-03:00","tipo_registro":"saida"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	return r
}

func TestRecordRowsKeepServerOffset(t *testing.T) {
	rows := recordRows([]api.PunchRecord{serverRecord(t)}, true)
	require.Len(t, rows, 1)
	assert.Equal(t, "10/03/2025", rows[0][2])
	assert.Equal(t, "22:30", rows[0][3])
}

func TestEditRecordUsesServerOffset(t *testing.T) {
	c := apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1"})
	m := NewAdminRecordsModel(c, 10)
	m.openEdit(serverRecord(t))
	assert.Equal(t, "2025-03-10 22:30", m.Form.value(editTimestamp))

	m.Form.Inputs[editTimestamp].SetValue("2025-03-10 23:00")
	req, err := m.editRequest()
	require.NoError(t, err)
	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)), req.Timestamp)
}

func TestAdminRecordsSearchResultsFocusTable(t *testing.T) {
	c := apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1"})
	m := NewAdminRecordsModel(c, 10)
	require.Equal(t, modeFilter, m.Mode)

	s, _ := m.Update(adminRecordsMsg{Records: []api.PunchRecord{serverRecord(t)}})
	r := s.(AdminRecordsModel)
	assert.Equal(t, modeList, r.Mode)
	assert.Len(t, r.Records, 1)

	m.Mode = modeFilter
	s, _ = m.Update(adminRecordsMsg{apiResult: apiResult{Err: assert.AnError}})
	assert.Equal(t, modeFilter, s.(AdminRecordsModel).Mode)
}
