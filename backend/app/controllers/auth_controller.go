package controllers

import (
	"errors"
	"net/http"

	jwtutil "ponto/backend/app/jwt"
	"ponto/backend/app/services"
	"ponto/backend/global"
	"ponto/pkg/api"
)

type AuthController struct {
	Users  *services.UserService
	Signer *jwtutil.Signer
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer) *AuthController {
	return &AuthController{Users: users, Signer: signer}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeMsg(w, http.StatusBadRequest, "Usuário e senha são obrigatórios.")
		return
	}
	u, err := c.Users.ValidateCredentials(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			global.Logger.Warn().Str("username", req.Username).Msg("login rejected")
			writeMsg(w, http.StatusUnauthorized, "Usuário ou senha inválidos")
			return
		}
		writeServiceError(w, err, "", "")
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Username, u.Role)
	if err != nil {
		global.Logger.Error().Err(err).Msg("sign token")
		writeMsg(w, http.StatusInternalServerError, "Erro ao gerar token.")
		return
	}
	writeJSON(w, http.StatusOK, api.LoginResponse{AccessToken: token, Role: api.Role(u.Role)})
}
