package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"ponto/backend/app/services"
	"ponto/backend/global"
	"ponto/pkg/api"
)

const msgRecordNotFound = "Registro não encontrado."

type AdminRecordController struct{ Punches *services.PunchService }

func NewAdminRecordController(punches *services.PunchService) *AdminRecordController {
	return &AdminRecordController{Punches: punches}
}

// parseRecordFilter reads usuario_id, ano, mes and dia; ano and mes are required.
func parseRecordFilter(r *http.Request) (services.RecordFilter, string) {
	var f services.RecordFilter
	q := r.URL.Query()
	if q.Get("ano") == "" || q.Get("mes") == "" {
		return f, "Ano e mês são obrigatórios."
	}
	var err error
	if f.Ano, err = strconv.Atoi(q.Get("ano")); err != nil {
		return f, "Ano inválido."
	}
	if f.Mes, err = strconv.Atoi(q.Get("mes")); err != nil {
		return f, "Mês inválido."
	}
	if f.Dia, err = queryInt(r, "dia", 0); err != nil {
		return f, "Dia inválido."
	}
	uid, err := queryInt(r, "usuario_id", 0)
	if err != nil || uid < 0 {
		return f, "Funcionário inválido."
	}
	f.UsuarioID = uint(uid)
	return f, ""
}

// List GET /api/admin/registros?usuario_id&ano&mes&dia
func (c *AdminRecordController) List(w http.ResponseWriter, r *http.Request) {
	f, msg := parseRecordFilter(r)
	if msg != "" {
		writeMsg(w, http.StatusBadRequest, msg)
		return
	}
	recs, err := c.Punches.List(f)
	if err != nil {
		writeServiceError(w, err, "", "")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// Create POST /api/admin/registros
func (c *AdminRecordController) Create(w http.ResponseWriter, r *http.Request) {
	var req api.ManualEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := c.Punches.ManualEntry(req)
	if err != nil {
		writeServiceError(w, err, msgUserNotFound, "")
		return
	}
	global.Logger.Info().Str("admin", adminName(r)).Uint("usuario_id", req.UsuarioID).Str("data", req.Data).Int("criados", n).Msg("manual entry")
	writeJSON(w, http.StatusCreated, api.ManualEntryResponse{Msg: fmt.Sprintf("%d registro(s) lançado(s) com sucesso!", n), Criados: n})
}

// Update PUT /api/admin/registros/{id}
func (c *AdminRecordController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req api.UpdateRecordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := c.Punches.Update(id, req); err != nil {
		writeServiceError(w, err, msgRecordNotFound, "")
		return
	}
	global.Logger.Info().Str("admin", adminName(r)).Uint("registro_id", id).Msg("record updated")
	writeMsg(w, http.StatusOK, "Registro atualizado com sucesso!")
}

// Delete DELETE /api/admin/registros/{id}
func (c *AdminRecordController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Punches.Delete(id); err != nil {
		writeServiceError(w, err, msgRecordNotFound, "")
		return
	}
	global.Logger.Info().Str("admin", adminName(r)).Uint("registro_id", id).Msg("record deleted")
	writeMsg(w, http.StatusOK, "Registro deletado com sucesso!")
}
