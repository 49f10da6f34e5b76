package handlers

import (
	"context"
	"net/http"
	"strings"

	"calorease/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// AuthMiddleware guards user-scoped routes with a Bearer session token.
func AuthMiddleware(tokens *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, http.StatusUnauthorized, "Authorization header required", "")
				return
			}
			if !strings.HasPrefix(header, "Bearer ") {
				respondError(w, http.StatusUnauthorized, "Invalid authorization header format", "")
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid token", "")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userID extracts the authenticated user id, or "" for anonymous requests.
func userID(r *http.Request) string {
	claims, ok := r.Context().Value(claimsKey).(*auth.Claims)
	if !ok {
		return ""
	}
	return claims.UserID
}
