package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ponto/backend/app/services"
	"ponto/backend/global"
	"ponto/pkg/api"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.MessageResponse{Msg: msg})
}

// writeServiceError maps a service error to its status; notFound and conflict carry the
// resource-specific wording.
func writeServiceError(w http.ResponseWriter, err error, notFound, conflict string) {
	var inputErr *services.InputError
	switch {
	case errors.As(err, &inputErr):
		writeMsg(w, http.StatusBadRequest, inputErr.Msg)
	case errors.Is(err, services.ErrInvalidInput):
		writeMsg(w, http.StatusBadRequest, "Dados inválidos.")
	case errors.Is(err, services.ErrNotFound):
		writeMsg(w, http.StatusNotFound, notFound)
	case errors.Is(err, services.ErrConflict):
		writeMsg(w, http.StatusConflict, conflict)
	default:
		global.Logger.Error().Err(err).Msg("request failed")
		writeMsg(w, http.StatusInternalServerError, "Erro interno do servidor.")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMsg(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		writeMsg(w, http.StatusBadRequest, "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// queryInt parses an optional integer parameter; absent or empty yields def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
