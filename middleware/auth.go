package middleware

import (
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/tc2000/fantasy/authenticator"
	"github.com/tc2000/fantasy/userctx"
)

// RequireAuth gates a route group behind bearer token verification. If role
// is non-empty the token must carry exactly that role; a valid token with the
// wrong role is rejected with 403, all other failures with 401.
func RequireAuth(tokens *authenticator.TokenManager, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || raw == "" {
				writeAuthError(w, http.StatusUnauthorized, "Missing token")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				log.WithError(err).Warn("rejected bearer token")
				writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			if role != "" && claims.Role != role {
				writeAuthError(w, http.StatusForbidden, "Insufficient role")
				return
			}

			// Make identity available for downstream audit attribution
			ctx := userctx.SetUser(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes a JSON error body with the given status
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, message)
}
