// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type ctxKey string

const userKey ctxKey = "user"

// unauthorized writes a 401 with the same JSON error body the handlers use.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// TokenVerifier validates an identity token and returns the user id it was
// issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth is a middleware that resolves the request's identity from a Bearer
// token.
//
// Requests without an Authorization header pass through anonymously —
// public and optional-auth routes stay reachable. A present but invalid
// token is rejected with 401 even on optional routes, so a caller never
// silently falls back to the anonymous view of a song.
//
// On successful verification the token's user id is stored in the request
// context, so it can be used downstream as the authenticated user ID.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				// Anonymous request
				next.ServeHTTP(w, r)
				return
			}
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				unauthorized(w, "invalid authorization header")
				return
			}
			userID, err := verifier.Verify(tokenString)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that carry no authenticated identity with
// 401. It must be mounted after Auth.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserIDFromContext(r.Context()) == "" {
			unauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context. Returns an empty string if the request is anonymous.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
