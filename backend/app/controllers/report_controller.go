package controllers

import (
	"net/http"
	"strconv"

	"ponto/backend/app/services"
)

type ReportController struct{ Reports *services.ReportService }

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// Export GET /api/admin/relatorio?ano&mes&usuario_id
func (c *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	f, msg := parseRecordFilter(r)
	if msg != "" {
		writeMsg(w, http.StatusBadRequest, msg)
		return
	}
	data, filename, err := c.Reports.Build(f.Ano, f.Mes, f.UsuarioID)
	if err != nil {
		writeServiceError(w, err, msgUserNotFound, "")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
