package router

import (
	"net/http"

	"ponto/backend/app/controllers"
	"ponto/backend/app/middleware"
)

type Controllers struct {
	Health  *controllers.HealthController
	Auth    *controllers.AuthController
	Me      *controllers.MeController
	Punch   *controllers.PunchController
	Users   *controllers.AdminUserController
	Records *controllers.AdminRecordController
	Report  *controllers.ReportController
}

func NewRouter(c Controllers, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()
	// public
	mux.HandleFunc("GET /api/healthcheck", c.Health.Check)
	mux.HandleFunc("POST /api/login", c.Auth.Login)

	// any logged-in user
	mux.Handle("GET /api/me/hoje", mw.RequireAuth(http.HandlerFunc(c.Me.Today)))
	mux.Handle("GET /api/me/registros", mw.RequireAuth(http.HandlerFunc(c.Me.Records)))
	mux.Handle("POST /api/ponto/registrar", mw.RequireAuth(http.HandlerFunc(c.Punch.Register)))

	// admin-only endpoints
	mux.Handle("GET /api/admin/usuarios", mw.RequireAdmin(http.HandlerFunc(c.Users.List)))
	mux.Handle("POST /api/admin/usuarios", mw.RequireAdmin(http.HandlerFunc(c.Users.Create)))
	mux.Handle("PUT /api/admin/usuarios/{id}", mw.RequireAdmin(http.HandlerFunc(c.Users.Update)))
	mux.Handle("DELETE /api/admin/usuarios/{id}", mw.RequireAdmin(http.HandlerFunc(c.Users.Delete)))

	mux.Handle("GET /api/admin/registros", mw.RequireAdmin(http.HandlerFunc(c.Records.List)))
	mux.Handle("POST /api/admin/registros", mw.RequireAdmin(http.HandlerFunc(c.Records.Create)))
	mux.Handle("PUT /api/admin/registros/{id}", mw.RequireAdmin(http.HandlerFunc(c.Records.Update)))
	mux.Handle("DELETE /api/admin/registros/{id}", mw.RequireAdmin(http.HandlerFunc(c.Records.Delete)))

	mux.Handle("GET /api/admin/relatorio", mw.RequireAdmin(http.HandlerFunc(c.Report.Export)))

	return mux
}
