package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Vickycabo/CAPE/internal/service"
	"github.com/Vickycabo/CAPE/internal/session"
)

type ctxKey struct{}

// Middleware resuelve la sesión del request y aplica el guard de rutas.
type Middleware struct {
	auth *service.AuthService
}

func NewMiddleware(auth *service.AuthService) *Middleware {
	return &Middleware{auth: auth}
}

// WithSession adjunta la foto de sesión al contexto del request. Un token
// ausente, inválido o vencido resulta en sesión anónima, nunca en error.
func (m *Middleware) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.auth.Resolve(bearerToken(r))
		ctx := context.WithValue(r.Context(), ctxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLogin deja pasar sólo sesiones iniciadas.
func (m *Middleware) RequireLogin(next http.Handler) http.Handler {
	return m.require(next, false)
}

// RequireAdmin deja pasar sólo sesiones de administrador.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.require(next, true)
}

func (m *Middleware) require(next http.Handler, requireAdmin bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.Allow(SessionFrom(r.Context()), requireAdmin) {
			deny(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFrom devuelve la foto de sesión del contexto; sesión anónima si el
// middleware no corrió.
func SessionFrom(ctx context.Context) session.Session {
	if sess, ok := ctx.Value(ctxKey{}).(session.Session); ok {
		return sess
	}
	return session.Session{}
}

// deny responde 401 indicando al cliente que redirija al login.
func deny(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"message":  "Necesitás iniciar sesión",
		"redirect": "/login",
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
