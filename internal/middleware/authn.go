package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/services/iam"
)

// Authenticator resolves a bearer token to a principal. Implemented by the
// identity service.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
}

// RequireSession rejects requests without a valid bearer token. Anonymous
// callers receive 401; a guest-role session is a different, admitted state.
func RequireSession(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			principal, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					writeJSONError(w, http.StatusUnauthorized, "session has expired")
				case errors.Is(err, iam.ErrAccountDisabled):
					writeJSONError(w, http.StatusUnauthorized, "account is disabled")
				default:
					writeJSONError(w, http.StatusUnauthorized, "session is invalid")
				}
				return
			}

			ctx := auth.SetPrincipalContext(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
