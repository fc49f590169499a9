package server

import (
	"context"
	"errors"
	"net/http"

	"userhub/internal/auth"
)

type ctxKey string

const userIDContextKey ctxKey = "userID"

// requireSession gates protected routes: it resolves the session
// cookie to a user identity, slides the session expiry forward and
// stores the identity in the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sessionIDFromRequest(r)
		userID, err := s.Sessions.UserID(r.Context(), id)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to read session")
			return
		}

		_ = s.Sessions.Renew(r.Context(), id)

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(userIDContextKey).(string); ok {
		return val
	}
	return ""
}
