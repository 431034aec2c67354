package admin

import (
	"errors"
	"fmt"
	"strings"

	"ponto/pkg/api"
)

var (
	ErrPasswordRequired = errors.New("a senha é obrigatória para criar um usuário")
	ErrMissingFields    = errors.New("nome completo e usuário são obrigatórios")
)

// UserForm is the create/edit form for an employee account.
type UserForm struct {
	ID           uint
	NomeCompleto string
	Username     string
	Password     string
	Role         api.Role
}

func FormFromUser(u api.User) UserForm {
	return UserForm{ID: u.ID, NomeCompleto: u.NomeCompleto, Username: u.Username, Role: u.Role}
}

func (f UserForm) role() api.Role {
	if f.Role == "" {
		return api.RoleFuncionario
	}
	return f.Role
}

func (f UserForm) validate() error {
	if strings.TrimSpace(f.NomeCompleto) == "" || strings.TrimSpace(f.Username) == "" {
		return ErrMissingFields
	}
	if !f.role().Valid() {
		return fmt.Errorf("perfil inválido: %q", f.Role)
	}
	return nil
}

// CreatePayload fails before any request when the password is blank.
func (f UserForm) CreatePayload() (api.CreateUserRequest, error) {
	if err := f.validate(); err != nil {
		return api.CreateUserRequest{}, err
	}
	if strings.TrimSpace(f.Password) == "" {
		return api.CreateUserRequest{}, ErrPasswordRequired
	}
	return api.CreateUserRequest{
		NomeCompleto: strings.TrimSpace(f.NomeCompleto), Username: strings.TrimSpace(f.Username),
		Password: f.Password, Role: f.role(),
	}, nil
}

// UpdatePayload leaves the password out when it is blank so the stored one is kept.
func (f UserForm) UpdatePayload() (api.UpdateUserRequest, error) {
	if err := f.validate(); err != nil {
		return api.UpdateUserRequest{}, err
	}
	req := api.UpdateUserRequest{
		NomeCompleto: strings.TrimSpace(f.NomeCompleto), Username: strings.TrimSpace(f.Username), Role: f.role(),
	}
	if strings.TrimSpace(f.Password) != "" {
		p := f.Password
		req.Password = &p
	}
	return req, nil
}

// Summary describes the pending change for the confirmation step.
func (f UserForm) Summary() string {
	verb := "Criar"
	if f.ID != 0 {
		verb = "Atualizar"
	}
	s := fmt.Sprintf("%s usuário %s (%s) com perfil %s", verb, strings.TrimSpace(f.NomeCompleto), strings.TrimSpace(f.Username), f.role())
	if f.ID != 0 && strings.TrimSpace(f.Password) == "" {
		s += ", mantendo a senha atual"
	}
	return s + "?"
}

// FilterUsers keeps users whose name or username contains q, ignoring case.
func FilterUsers(users []api.User, q string) []api.User {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return users
	}
	out := make([]api.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.NomeCompleto), q) || strings.Contains(strings.ToLower(u.Username), q) {
			out = append(out, u)
		}
	}
	return out
}
