package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/sasfit/sasback/internal/auth"
	"github.com/sasfit/sasback/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireAuth rejects requests without a valid bearer token with 401. The
// token's subject must still name an existing user.
func RequireAuth(issuer *auth.Issuer, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Token de autenticación requerido")
				return
			}

			userID, _, err := issuer.Parse(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Token inválido o expirado")
				return
			}

			user, err := models.GetUserByID(db, userID)
			if errors.Is(err, models.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "Token inválido o expirado")
				return
			}
			if err != nil {
				log.Printf("middleware: failed to load user %d: %v", userID, err)
				writeError(w, http.StatusInternalServerError, "Error interno del servidor")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// UserFromContext retrieves the authenticated user from the request context.
// Returns nil if no user is set (should not happen behind RequireAuth).
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userContextKey).(*models.User)
	return u
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
