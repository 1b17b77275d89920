package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vaultpass/passforge/internal/crypto"
)

type contextKey string

const (
	clientKey    contextKey = "client"
	requestIDKey contextKey = "requestID"
)

// JWTAuth returns middleware that requires a valid Bearer API token.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, status, msg := authenticate(r, secret)
			if status != 0 {
				writeJSONError(w, status, msg)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), client)))
		})
	}
}

// OptionalJWTAuth attaches the client of a valid Bearer token when one is sent
// and lets anonymous requests through. An invalid token is still rejected.
func OptionalJWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			client, status, msg := authenticate(r, secret)
			if status != 0 {
				writeJSONError(w, status, msg)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), client)))
		})
	}
}

func authenticate(r *http.Request, secret string) (string, int, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", http.StatusUnauthorized, "missing authorization header"
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		return "", http.StatusUnauthorized, "invalid authorization format"
	}

	claims, err := crypto.ValidateToken(token, secret)
	if err != nil {
		return "", http.StatusUnauthorized, "invalid or expired token"
	}
	return claims.Client(), 0, ""
}

// WithClient stores the authenticated client name in ctx.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, clientKey, client)
}

// ClientFromContext extracts the authenticated client name from the request context.
func ClientFromContext(ctx context.Context) (string, bool) {
	client, ok := ctx.Value(clientKey).(string)
	return client, ok && client != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
