package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"meeting-dashboard/internal/auth"
	"meeting-dashboard/internal/session"
)

type ctxKey string

const SessionIDKey ctxKey = "sid"

const CookieName = "dash_session"

// SessionID returns the id put in the context by Session.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}

// Session attaches a session id to every request. A missing, invalid,
// expired or unknown cookie starts a fresh session.
func Session(log zerolog.Logger, reg *session.Registry, secret string, ttl time.Duration, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(CookieName); err == nil {
				if claims, err := auth.ParseToken(c.Value, secret); err == nil && reg.Exists(claims.SessionID) {
					sid = claims.SessionID
				}
			}

			if sid == "" {
				sid = reg.Create()
				tok, err := auth.MakeToken(sid, secret, ttl)
				if err != nil {
					log.Error().Err(err).Msg("session token")
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    tok,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(ttl.Seconds()),
				})
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
