package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"ponto/backend/app/middleware"
	"ponto/backend/app/services"
	"ponto/backend/global"
	"ponto/pkg/api"
)

type PunchController struct{ Punches *services.PunchService }

func NewPunchController(punches *services.PunchService) *PunchController {
	return &PunchController{Punches: punches}
}

// Register POST /api/ponto/registrar
func (c *PunchController) Register(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	var req api.PunchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := c.Punches.Register(r.Context(), claims.UserID, req.Tipo); err != nil {
		if errors.Is(err, services.ErrAlreadyPunched) {
			writeMsg(w, http.StatusConflict, fmt.Sprintf("Ponto de '%s' já registrado hoje.", req.Tipo))
			return
		}
		writeServiceError(w, err, "", "")
		return
	}
	global.Logger.Info().Uint("usuario_id", claims.UserID).Str("tipo", string(req.Tipo)).Msg("punch registered")
	writeMsg(w, http.StatusCreated, fmt.Sprintf("Ponto de '%s' registrado com sucesso!", req.Tipo))
}
