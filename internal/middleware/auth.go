package middleware

import (
	"context"
	"net/http"
	"strings"

	"resolvewise/internal/config"
	"resolvewise/internal/utils"
)

type ctxKey string

const CtxSession ctxKey = "session"

// SessionCookie is the name of the httpOnly cookie holding the signed
// session token. No Max-Age is set: like sessionStorage in the original
// product, the session dies with the browser session.
const SessionCookie = "session"

// WithAuth resolves the session token from the cookie (or an Authorization
// bearer, for API clients) and puts the decoded session into the request
// context. A missing or invalid token is not an error here; route guards
// decide what unauthenticated requests may do.
func WithAuth(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tok string
			if c, err := r.Cookie(SessionCookie); err == nil {
				tok = c.Value
			} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tok = strings.TrimPrefix(h, "Bearer ")
			}

			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := utils.ParseSession(cfg.SessionSecret, tok)
			if err != nil {
				// Clear a broken/expired cookie so it stops being sent.
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    "",
					Path:     "/",
					HttpOnly: true,
					MaxAge:   -1,
				})
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), CtxSession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
