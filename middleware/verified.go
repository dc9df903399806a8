package middleware

import (
	"net/http"

	goSignup "github.com/MrEthical07/goSignup"
)

// RequireVerified returns middleware that requires a live session whose
// account has a verified email address. Sessions created before
// verification are rejected with 403.
func RequireVerified(engine *goSignup.Engine) func(http.Handler) http.Handler {
	guard := Guard(engine)
	return func(next http.Handler) http.Handler {
		return guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok || !sess.EmailVerified {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
