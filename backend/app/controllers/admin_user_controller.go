package controllers

import (
	"net/http"

	"ponto/backend/app/middleware"
	"ponto/backend/app/services"
	"ponto/backend/global"
	"ponto/pkg/api"
)

const (
	msgUserNotFound = "Usuário não encontrado."
	msgUserExists   = "Nome de usuário já existe."
)

type AdminUserController struct{ Users *services.UserService }

func NewAdminUserController(users *services.UserService) *AdminUserController {
	return &AdminUserController{Users: users}
}

// List GET /api/admin/usuarios
func (c *AdminUserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.Users.ListUsers()
	if err != nil {
		writeServiceError(w, err, "", "")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Create POST /api/admin/usuarios
func (c *AdminUserController) Create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := c.Users.CreateUser(req)
	if err != nil {
		writeServiceError(w, err, msgUserNotFound, msgUserExists)
		return
	}
	global.Logger.Info().Str("admin", adminName(r)).Str("username", u.Username).Msg("user created")
	writeMsg(w, http.StatusCreated, "Usuario criado com sucesso!")
}

// Update PUT /api/admin/usuarios/{id}
func (c *AdminUserController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req api.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := c.Users.UpdateUser(id, req); err != nil {
		writeServiceError(w, err, msgUserNotFound, msgUserExists)
		return
	}
	global.Logger.Info().Str("admin", adminName(r)).Uint("usuario_id", id).Bool("password_changed", req.Password != nil && *req.Password != "").Msg("user updated")
	writeMsg(w, http.StatusOK, "Usuario atualizado com sucesso!")
}

// Delete DELETE /api/admin/usuarios/{id}
func (c *AdminUserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Users.DeleteUser(id); err != nil {
		writeServiceError(w, err, msgUserNotFound, "")
		return
	}
	global.Logger.Info().Str("admin", adminName(r)).Uint("usuario_id", id).Msg("user deleted")
	writeMsg(w, http.StatusOK, "Usuario deletado com sucesso!")
}

func adminName(r *http.Request) string {
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		return claims.Username
	}
	return ""
}
