package middleware

import (
	"context"
	"net/http"
	"strings"

	goSignup "github.com/MrEthical07/goSignup"
	"github.com/MrEthical07/goSignup/session"
)

// SessionCookieName is the cookie the guard reads when no Authorization
// header is present.
const SessionCookieName = "sid"

type sessionContextKey struct{}

// SessionFromContext returns the session injected by [Guard], if any.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess, ok
}

// Guard returns middleware that requires a live session. The session ID
// is taken from the Authorization bearer token or, failing that, the
// "sid" cookie. The validated session is injected into the request
// context.
func Guard(engine *goSignup.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			sid, ok := sessionID(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			sess, err := engine.ValidateSession(r.Context(), sid)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionID(r *http.Request) (string, bool) {
	if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
		return token, true
	}
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
