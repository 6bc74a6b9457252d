package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/fieldops/pkg/httpx"
	"github.com/ghuser/fieldops/pkg/logger"
)

const sessionName = "fieldops_session"

// Session value keys written at login time.
const (
	sessionUserIDKey = "user_id"
	sessionRoleKey   = "role"
	sessionNameKey   = "name"
)

// RequireSession is a chi middleware that enforces dashboard authentication
// via session cookies. It reads the session, extracts the user identity and
// injects it into the request context. Returns 401 Unauthorized if the
// session is missing, invalid, or lacks a valid user_id.
//
// After this middleware, handlers can safely call auth.IdentityFromCtx(r.Context()).
func RequireSession(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userIDStr, ok := session.Values[sessionUserIDKey].(string)
			if !ok || userIDStr == "" {
				log.WarnContext(r.Context(), "session missing user_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid user_id in session", "user_id", userIDStr, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			role, _ := session.Values[sessionRoleKey].(string)
			name, _ := session.Values[sessionNameKey].(string)

			ctx := WithIdentity(r.Context(), Identity{UserID: userID, Role: role, Name: name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth accepts either a dashboard session cookie or a mobile bearer
// token. Bearer tokens are tried first so the crew app never touches cookies.
func RequireAuth(store sessions.Store, tokens *TokenVerifier, log logger.Logger) func(http.Handler) http.Handler {
	sessionMw := RequireSession(store, log)
	return func(next http.Handler) http.Handler {
		withSession := sessionMw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				withSession.ServeHTTP(w, r)
				return
			}

			id, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.WarnContext(r.Context(), "invalid bearer token", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
