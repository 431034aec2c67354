package controllers

import (
	"net/http"

	"ponto/backend/app/middleware"
	"ponto/backend/app/services"
)

// MeController serves the logged-in user's own data.
type MeController struct{ Punches *services.PunchService }

func NewMeController(punches *services.PunchService) *MeController {
	return &MeController{Punches: punches}
}

// Today GET /api/me/hoje
func (c *MeController) Today(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	out, err := c.Punches.Today(claims.UserID)
	if err != nil {
		writeServiceError(w, err, "Usuário não encontrado.", "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Records GET /api/me/registros?mes&ano
func (c *MeController) Records(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	now := c.Punches.Now().In(c.Punches.Location())
	mes, err := queryInt(r, "mes", int(now.Month()))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Mês inválido.")
		return
	}
	ano, err := queryInt(r, "ano", now.Year())
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Ano inválido.")
		return
	}
	recs, err := c.Punches.List(services.RecordFilter{UsuarioID: claims.UserID, Ano: ano, Mes: mes})
	if err != nil {
		writeServiceError(w, err, "", "")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
