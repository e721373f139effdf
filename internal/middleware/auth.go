package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tasklist/tasklist-go/internal/crypto"
)

type contextKey string

const (
	userIDKey       contextKey = "userID"
	userIDHolderKey contextKey = "userIDHolder"
)

// userIDHolder lets middleware that runs before authentication (the request
// logger) observe the user id resolved later in the chain. JWTAuth derives a
// new request via WithContext, so outer middleware never sees the derived
// context itself — only this shared holder.
type userIDHolder struct {
	id string
}

// JWTAuth returns middleware that validates a Bearer session token from the
// Authorization header and injects the resolved user id into the request
// context. Requests with a missing, tampered, or expired token are rejected
// before any handler runs.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := r.Context()
			if holder, ok := ctx.Value(userIDHolderKey).(*userIDHolder); ok {
				holder.id = claims.UserID
			}

			ctx = context.WithValue(ctx, userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// WithUserID returns a context carrying the given user id. Intended for tests
// that exercise handlers without the full middleware chain.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
