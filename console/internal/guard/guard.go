// Package guard maps console routes to the access level they require.
package guard

import (
	"errors"

	"ponto/console/internal/session"
	"ponto/pkg/api"
)

const (
	Login        = "/"
	Punch        = "/registro-de-ponto"
	MyRecords    = "/meus-registros"
	AdminUsers   = "/admin"
	AdminRecords = "/admin/registros-de-ponto"
	AdminReport  = "/admin/relatorio"
)

type Access int

const (
	Public Access = iota
	Authenticated
	AdminOnly
)

var routes = map[string]Access{
	Login:        Public,
	Punch:        Authenticated,
	MyRecords:    Authenticated,
	AdminUsers:   AdminOnly,
	AdminRecords: AdminOnly,
	AdminReport:  AdminOnly,
}

var (
	ErrNotAuthenticated = errors.New("faça login para continuar")
	ErrForbidden        = errors.New("acesso restrito a administradores")
)

// Resolve returns the route to render when sess asks for path.
func Resolve(path string, sess session.Session) string {
	access, ok := routes[path]
	if !ok {
		return Login
	}
	switch {
	case access == Public:
		return path
	case !sess.Authenticated():
		return Login
	case access == AdminOnly && sess.Role != api.RoleAdmin:
		return Punch
	}
	return path
}

// Check is Resolve for callers that cannot redirect.
func Check(path string, sess session.Session) error {
	switch Resolve(path, sess) {
	case path:
		return nil
	case Login:
		return ErrNotAuthenticated
	default:
		return ErrForbidden
	}
}

// Home is the landing route after login.
func Home(role api.Role) string {
	if role == api.RoleAdmin {
		return AdminUsers
	}
	return Punch
}
