package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ariefcatur/go-marketplace.git/internal/session"
	"github.com/google/uuid"
)

const SessionCookie = "sid"

type sessionKey struct{}

// Sessions loads the caller's session, or starts a new one, and slides its
// expiry forward by ttl on every request.
func Sessions(store session.Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			expires := time.Now().Add(ttl)

			var (
				sess  session.Session
				found bool
			)
			if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
				s, ok, err := store.Get(ctx, c.Value)
				if err != nil {
					writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
					return
				}
				if ok {
					// a session that lapsed since Get is replaced below
					err := store.Touch(ctx, s.ID, expires)
					switch {
					case err == nil:
						s.Expires = expires
						sess, found = s, true
					case !errors.Is(err, session.ErrNotFound):
						writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
						return
					}
				}
			}
			if !found {
				sess = session.Session{ID: uuid.NewString(), Data: map[string]any{}, Expires: expires}
				if err := store.Create(ctx, sess); err != nil {
					writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
					return
				}
			}

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID,
				Path:     "/",
				Expires:  expires,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey{}, sess)))
		})
	}
}

// SessionFrom returns the session installed by Sessions.
func SessionFrom(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(session.Session)
	return s, ok
}
