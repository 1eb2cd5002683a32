// Package auth provides JWT-based authentication for the grievance portal:
// token issuing in the jwt subpackage and chi middleware that loads the
// authenticated citizen or admin into the request context.
package auth

import (
	"net/http"
	"strings"

	"github.com/jansunwai/jansunwai-backend/internal/auth/jwt"
	"github.com/jansunwai/jansunwai-backend/pkg/errors"
	"github.com/jansunwai/jansunwai-backend/pkg/httputil"
	"github.com/jansunwai/jansunwai-backend/pkg/permissions"
)

// Middleware validates bearer tokens and adds user context to requests
type Middleware struct {
	manager *jwt.Manager
}

// NewMiddleware creates an auth middleware backed by the given token manager
func NewMiddleware(manager *jwt.Manager) *Middleware {
	return &Middleware{manager: manager}
}

// Authenticate rejects requests without a valid access token and puts the
// caller's identity on the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.ErrorLocalized(w, r, errors.Unauthorized("missing authorization header"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.ErrorLocalized(w, r, errors.Unauthorized("invalid authorization header format"))
			return
		}

		claims, err := m.manager.ValidateAccessToken(parts[1])
		if err != nil {
			httputil.ErrorLocalized(w, r, err)
			return
		}

		ctx := httputil.WithUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows only department or super admins through. It must run
// after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := httputil.GetUserRole(r.Context())
		if !permissions.IsAdmin(role) {
			httputil.ErrorLocalized(w, r, errors.Forbidden("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
