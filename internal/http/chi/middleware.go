package chi

import (
	"net/http"
	"strings"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/local-library/internal/user"
)

// authenticate resolves the bearer token into a user.User on the request context
func authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeMessage(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}
			u, err := user.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				oplog := httplog.LogEntry(r.Context())
				oplog.Info().Err(err).Msg("rejected token")
				writeMessage(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}
			httplog.LogEntrySetField(r.Context(), "user_id", u.ID)
			next.ServeHTTP(w, r.WithContext(user.WithUser(r.Context(), u)))
		})
	}
}

func requireCapability(c user.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := user.FromContext(r.Context())
			if !ok {
				writeMessage(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !u.Has(c) {
				writeMessage(w, r, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requester returns the authenticated user's id, empty for anonymous requests
func requester(r *http.Request) string {
	u, _ := user.FromContext(r.Context())
	return u.ID
}
