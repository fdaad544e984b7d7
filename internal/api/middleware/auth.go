package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pulseboard/pulseboard/internal/api/response"
	"github.com/pulseboard/pulseboard/internal/auth"
)

const identityKey contextKey = "identity"

// SessionResolver restores an identity from a session token, or nil for
// anonymous. Satisfied by auth.Service.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) *auth.Identity
}

// Auth is middleware that resolves the bearer session token to an Identity.
// A request that resolves to anonymous gets 401; resolution failures inside
// the auth service already degrade to anonymous, so this middleware never
// sees an error.
func Auth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			identity := resolver.Resolve(r.Context(), BearerToken(r))
			if identity == nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", requestID)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the session token from the Authorization header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}
