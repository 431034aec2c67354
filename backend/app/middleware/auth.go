package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	jwtutil "ponto/backend/app/jwt"
	"ponto/pkg/api"
)

type ctxKey int

const ClaimsKey ctxKey = 1

const (
	msgMissingToken = "Token de autorização não encontrado."
	msgInvalidToken = "Token inválido."
	msgExpiredToken = "Token expirado. Faça login novamente."
	msgAdminOnly    = "Acesso restrito a administradores!"
)

type Auth struct{ Signer *jwtutil.Signer }

func (a *Auth) claims(r *http.Request) (*jwtutil.Claims, string) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil, msgMissingToken
	}
	token := strings.TrimPrefix(authz, "Bearer ")
	claims, err := a.Signer.Parse(token)
	if errors.Is(err, jwtutil.ErrTokenExpired) {
		return nil, msgExpiredToken
	}
	if err != nil {
		return nil, msgInvalidToken
	}
	return claims, ""
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, msg := a.claims(r)
		if claims == nil {
			deny(w, http.StatusUnauthorized, msg)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin answers 401 for a bad token and 403 for a valid non-admin token.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, msg := a.claims(r)
		if claims == nil {
			deny(w, http.StatusUnauthorized, msg)
			return
		}
		if claims.Role != string(api.RoleAdmin) {
			deny(w, http.StatusForbidden, msgAdminOnly)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.MessageResponse{Msg: msg})
}
