package initialize

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	jwtutil "ponto/backend/app/jwt"
	"ponto/backend/app/report"
	"ponto/backend/config"
	"ponto/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testNow = time.Date(2025, 3, 10, 11, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) *App {
	t.Helper()
	return newTestAppIn(t, "UTC", testNow)
}

func newTestAppIn(t *testing.T, timezone string, now time.Time) *App {
	t.Helper()
	cfg := &config.Config{
		DB:             config.DB{Driver: "sqlite", Path: ":memory:"},
		Timezone:       timezone,
		BootstrapAdmin: config.Admin{NomeCompleto: "Admin de Teste", Username: "testadmin", Password: "senha_admin"},
	}
	cfg.JWT.Secret = "chave_secreta_para_testes"
	cfg.JWT.Issuer = "ponto-test"
	cfg.JWT.ExpMin = 60

	app, err := Build(cfg)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	app.Punches.Now = func() time.Time { return now }

	_, err = app.Users.CreateUser(api.CreateUserRequest{
		NomeCompleto: "Func de Teste", Username: "testfunc", Password: "senha_func", Role: api.RoleFuncionario,
	})
	require.NoError(t, err)
	return app
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func login(t *testing.T, app *App, username, password string) string {
	t.Helper()
	rec := do(t, app.Router, http.MethodPost, "/api/login", "", api.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[api.LoginResponse](t, rec).AccessToken
}

func userID(t *testing.T, app *App, username string) uint {
	t.Helper()
	users, err := app.Users.ListUsers()
	require.NoError(t, err)
	for _, u := range users {
		if u.Username == username {
			return u.ID
		}
	}
	t.Fatalf("user %s not found", username)
	return 0
}

func TestHealthcheck(t *testing.T) {
	app := newTestApp(t)
	rec := do(t, app.Router, http.MethodGet, "/api/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "funcionando")
}

func TestLoginSuccessReturnsTokenAndRole(t *testing.T) {
	app := newTestApp(t)
	rec := do(t, app.Router, http.MethodPost, "/api/login", "", api.LoginRequest{Username: "testadmin", Password: "senha_admin"})
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[api.LoginResponse](t, rec)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, api.RoleAdmin, out.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	rec := do(t, app.Router, http.MethodPost, "/api/login", "", api.LoginRequest{Username: "testadmin", Password: "senha_errada"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Usuário ou senha inválidos", decode[api.MessageResponse](t, rec).Msg)
}

func TestLoginMissingFields(t *testing.T) {
	app := newTestApp(t)
	rec := do(t, app.Router, http.MethodPost, "/api/login", "", api.LoginRequest{Username: "testadmin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/me/hoje", "/api/admin/usuarios"} {
		rec := do(t, app.Router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		rec = do(t, app.Router, http.MethodGet, path, "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "Token inválido.", decode[api.MessageResponse](t, rec).Msg)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	app := newTestApp(t)
	expired := &jwtutil.Signer{Secret: app.Signer.Secret, Issuer: app.Signer.Issuer, ExpMin: -1}
	token, err := expired.Sign(userID(t, app, "testadmin"), "testadmin", string(api.RoleAdmin))
	require.NoError(t, err)

	for _, path := range []string{"/api/me/hoje", "/api/admin/usuarios"} {
		rec := do(t, app.Router, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "Token expirado. Faça login novamente.", decode[api.MessageResponse](t, rec).Msg)
	}
}

func TestAdminRouteForbiddenForFuncionario(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testfunc", "senha_func")
	rec := do(t, app.Router, http.MethodGet, "/api/admin/usuarios", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Acesso restrito a administradores!", decode[api.MessageResponse](t, rec).Msg)
}

func TestCreateUserAsAdmin(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testadmin", "senha_admin")
	req := api.CreateUserRequest{NomeCompleto: "Novo Funcionario", Username: "novofunc", Password: "senha_nova", Role: api.RoleFuncionario}

	rec := do(t, app.Router, http.MethodPost, "/api/admin/usuarios", token, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Usuario criado com sucesso!", decode[api.MessageResponse](t, rec).Msg)

	rec = do(t, app.Router, http.MethodPost, "/api/admin/usuarios", token, req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, app.Router, http.MethodGet, "/api/admin/usuarios", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.User](t, rec), 3)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateUserRejectsBlankPassword(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testadmin", "senha_admin")
	rec := do(t, app.Router, http.MethodPost, "/api/admin/usuarios", token,
		api.CreateUserRequest{NomeCompleto: "Sem Senha", Username: "semsenha", Role: api.RoleFuncionario})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUserPasswordIsOptional(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testadmin", "senha_admin")
	id := userID(t, app, "testfunc")
	path := "/api/admin/usuarios/" + itoa(id)

	rec := do(t, app.Router, http.MethodPut, path, token,
		api.UpdateUserRequest{NomeCompleto: "Func Renomeado", Username: "testfunc", Role: api.RoleFuncionario})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login(t, app, "testfunc", "senha_func")

	newPass := "outra_senha"
	rec = do(t, app.Router, http.MethodPut, path, token,
		api.UpdateUserRequest{NomeCompleto: "Func Renomeado", Username: "testfunc", Password: &newPass, Role: api.RoleFuncionario})
	require.Equal(t, http.StatusOK, rec.Code)
	login(t, app, "testfunc", newPass)

	rec = do(t, app.Router, http.MethodPut, "/api/admin/usuarios/9999", token,
		api.UpdateUserRequest{NomeCompleto: "X", Username: "x", Role: api.RoleFuncionario})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterPunchAndToday(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testfunc", "senha_func")

	rec := do(t, app.Router, http.MethodPost, "/api/ponto/registrar", token, api.PunchRequest{Tipo: api.Entrada})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Ponto de 'entrada' registrado com sucesso!", decode[api.MessageResponse](t, rec).Msg)

	rec = do(t, app.Router, http.MethodGet, "/api/me/hoje", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	today := decode[api.TodayResponse](t, rec)
	assert.Equal(t, "Func de Teste", today.NomeCompleto)
	assert.Equal(t, []api.PunchType{api.Entrada}, today.RegistrosHoje)

	rec = do(t, app.Router, http.MethodPost, "/api/ponto/registrar", token, api.PunchRequest{Tipo: api.Entrada})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, app.Router, http.MethodPost, "/api/ponto/registrar", token, api.PunchRequest{Tipo: "cafe"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPunchesResetOnNextDay(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testfunc", "senha_func")
	require.Equal(t, http.StatusCreated, do(t, app.Router, http.MethodPost, "/api/ponto/registrar", token, api.PunchRequest{Tipo: api.Saida}).Code)

	app.Punches.Now = func() time.Time { return testNow.AddDate(0, 0, 1) }
	rec := do(t, app.Router, http.MethodGet, "/api/me/hoje", token, nil)
	assert.Empty(t, decode[api.TodayResponse](t, rec).RegistrosHoje)
	assert.Equal(t, http.StatusCreated, do(t, app.Router, http.MethodPost, "/api/ponto/registrar", token, api.PunchRequest{Tipo: api.Saida}).Code)
}

func TestMyRecordsByMonth(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testfunc", "senha_func")
	require.Equal(t, http.StatusCreated, do(t, app.Router, http.MethodPost, "/api/ponto/registrar", token, api.PunchRequest{Tipo: api.Entrada}).Code)

	rec := do(t, app.Router, http.MethodGet, "/api/me/registros?mes=3&ano=2025", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	recs := decode[[]api.PunchRecord](t, rec)
	require.Len(t, recs, 1)
	assert.Equal(t, api.Entrada, recs[0].TipoRegistro)
	assert.True(t, recs[0].Timestamp.Equal(testNow))

	rec = do(t, app.Router, http.MethodGet, "/api/me/registros?mes=4&ano=2025", token, nil)
	assert.Empty(t, decode[[]api.PunchRecord](t, rec))

	rec = do(t, app.Router, http.MethodGet, "/api/me/registros?mes=13&ano=2025", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func seedMarch(t *testing.T, app *App, token string, uid uint) {
	t.Helper()
	rec := do(t, app.Router, http.MethodPost, "/api/admin/registros", token, api.ManualEntryRequest{
		UsuarioID: uid, Data: "2025-03-10", Entrada: "08:00", SaidaAlmoco: "12:00", VoltaAlmoco: "13:00", Saida: "17:30",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 4, decode[api.ManualEntryResponse](t, rec).Criados)

	rec = do(t, app.Router, http.MethodPost, "/api/admin/registros", token, api.ManualEntryRequest{
		UsuarioID: uid, Data: "2025-03-11", Entrada: "09:15", Justificativa: "consulta médica",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, decode[api.ManualEntryResponse](t, rec).Criados)
}

func TestAdminRecordFilters(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testadmin", "senha_admin")
	uid := userID(t, app, "testfunc")
	seedMarch(t, app, token, uid)

	rec := do(t, app.Router, http.MethodGet, "/api/admin/registros?usuario_id="+itoa(uid)+"&ano=2025&mes=3", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	recs := decode[[]api.PunchRecord](t, rec)
	require.Len(t, recs, 5)
	assert.Equal(t, "Func de Teste", recs[0].NomeCompleto)

	rec = do(t, app.Router, http.MethodGet, "/api/admin/registros?ano=2025&mes=3&dia=11", token, nil)
	recs = decode[[]api.PunchRecord](t, rec)
	require.Len(t, recs, 1)
	assert.Equal(t, "consulta médica", recs[0].Justificativa)

	rec = do(t, app.Router, http.MethodGet, "/api/admin/registros?ano=2025&mes=2", token, nil)
	assert.Empty(t, decode[[]api.PunchRecord](t, rec))

	rec = do(t, app.Router, http.MethodGet, "/api/admin/registros?ano=2025", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, app.Router, http.MethodGet, "/api/admin/registros?ano=2025&mes=2&dia=30", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestManualEntryRequiresATime(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testadmin", "senha_admin")
	uid := userID(t, app, "testfunc")

	rec := do(t, app.Router, http.MethodPost, "/api/admin/registros", token, api.ManualEntryRequest{UsuarioID: uid, Data: "2025-03-10"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, app.Router, http.MethodPost, "/api/admin/registros", token, api.ManualEntryRequest{UsuarioID: uid, Data: "10/03/2025", Entrada: "08:00"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, app.Router, http.MethodPost, "/api/admin/registros", token, api.ManualEntryRequest{UsuarioID: 4242, Data: "2025-03-10", Entrada: "08:00"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAndDeleteRecord(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testadmin", "senha_admin")
	uid := userID(t, app, "testfunc")
	seedMarch(t, app, token, uid)

	rec := do(t, app.Router, http.MethodGet, "/api/admin/registros?ano=2025&mes=3&dia=11", token, nil)
	target := decode[[]api.PunchRecord](t, rec)[0]
	path := "/api/admin/registros/" + itoa(target.ID)

	rec = do(t, app.Router, http.MethodPut, path, token, api.UpdateRecordRequest{Timestamp: "2025-03-11T08:45", Justificativa: "ajuste"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, app.Router, http.MethodGet, "/api/admin/registros?ano=2025&mes=3&dia=11", token, nil)
	updated := decode[[]api.PunchRecord](t, rec)[0]
	assert.Equal(t, "ajuste", updated.Justificativa)
	assert.True(t, updated.Timestamp.Equal(time.Date(2025, 3, 11, 8, 45, 0, 0, time.UTC)))

	rec = do(t, app.Router, http.MethodPut, path, token, api.UpdateRecordRequest{Timestamp: "ontem"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, http.StatusOK, do(t, app.Router, http.MethodDelete, path, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, app.Router, http.MethodDelete, path, token, nil).Code)
}

func TestDeleteUserRemovesTheirRecords(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testadmin", "senha_admin")
	uid := userID(t, app, "testfunc")
	seedMarch(t, app, token, uid)

	rec := do(t, app.Router, http.MethodDelete, "/api/admin/usuarios/"+itoa(uid), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, app.Router, http.MethodGet, "/api/admin/registros?ano=2025&mes=3", token, nil)
	assert.Empty(t, decode[[]api.PunchRecord](t, rec))
	assert.Equal(t, http.StatusNotFound, do(t, app.Router, http.MethodDelete, "/api/admin/usuarios/"+itoa(uid), token, nil).Code)
}

func TestReportDownload(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testadmin", "senha_admin")
	uid := userID(t, app, "testfunc")
	seedMarch(t, app, token, uid)

	rec := do(t, app.Router, http.MethodGet, "/api/admin/relatorio?ano=2025&mes=3&usuario_id="+itoa(uid), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "attachment; filename=relatorio_2025_03.xlsx", rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.GreaterOrEqual(t, len(rows[1]), 8)
	assert.Equal(t, []string{"Func de Teste", "testfunc", "10/03/2025", "08:00", "12:00", "13:00", "17:30", "8:30"}, rows[1][:8])

	rec = do(t, app.Router, http.MethodGet, "/api/admin/relatorio?ano=2025&mes=3&usuario_id=999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeedAdminsSkipsExisting(t *testing.T) {
	app := newTestApp(t)
	cfg := &config.Config{Admins: []config.Admin{
		{NomeCompleto: "Isis Valentina", Username: "Isis", Password: "admin"},
		{NomeCompleto: "Outro", Username: "testadmin", Password: "ignorada"},
	}}
	require.NoError(t, SeedAdmins(app.Users, cfg))

	login(t, app, "Isis", "admin")
	login(t, app, "testadmin", "senha_admin")
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func TestDayBoundariesFollowConfiguredTimezone(t *testing.T) {
	// 22:30 on 31/03 in São Paulo, already April in UTC
	app := newTestAppIn(t, "America/Sao_Paulo", time.Date(2025, 4, 1, 1, 30, 0, 0, time.UTC))
	admin := login(t, app, "testadmin", "senha_admin")
	token := login(t, app, "testfunc", "senha_func")
	uid := itoa(userID(t, app, "testfunc"))

	require.Equal(t, http.StatusCreated, do(t, app.Router, http.MethodPost, "/api/ponto/registrar", token, api.PunchRequest{Tipo: api.Saida}).Code)

	today := decode[api.TodayResponse](t, do(t, app.Router, http.MethodGet, "/api/me/hoje", token, nil))
	assert.Equal(t, []api.PunchType{api.Saida}, today.RegistrosHoje)

	mine := decode[[]api.PunchRecord](t, do(t, app.Router, http.MethodGet, "/api/me/registros?mes=3&ano=2025", token, nil))
	require.Len(t, mine, 1)
	_, offset := mine[0].Timestamp.Zone()
	assert.Equal(t, -3*3600, offset)
	assert.Equal(t, "2025-03-31 22:30", mine[0].Timestamp.Format("2006-01-02 15:04"))
	assert.Empty(t, decode[[]api.PunchRecord](t, do(t, app.Router, http.MethodGet, "/api/me/registros?mes=4&ano=2025", token, nil)))

	rec := do(t, app.Router, http.MethodGet, "/api/admin/registros?usuario_id="+uid+"&ano=2025&mes=3&dia=31", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]api.PunchRecord](t, rec), 1)
	rec = do(t, app.Router, http.MethodGet, "/api/admin/registros?usuario_id="+uid+"&ano=2025&mes=4&dia=1", admin, nil)
	assert.Empty(t, decode[[]api.PunchRecord](t, rec))
}

func TestConcurrentPunchesRecordOnce(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "testfunc", "senha_func")

	codes := make(chan int, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/ponto/registrar", bytes.NewBufferString(`{"tipo":"entrada"}`))
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	created := 0
	for code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusConflict, code)
		}
	}
	assert.Equal(t, 1, created)
}

func TestBuildOwnsConnections(t *testing.T) {
	app := newTestApp(t)
	assert.Nil(t, app.Redis)
	require.NoError(t, app.DB.Exec("SELECT 1").Error)

	app.Close()
	assert.Error(t, app.DB.Exec("SELECT 1").Error)
}
