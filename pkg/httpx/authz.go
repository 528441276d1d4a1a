package httpx

import (
	"net/http"

	"github.com/cortexhq/cortex/pkg/jwtx"
)

// Policy messages. The two 403 cases are deliberately distinct so a caller
// can tell "not logged in" apart from "wrong entry channel".
const (
	msgNotLoggedIn  = "Token is valid, but you are not logged in as a user."
	msgNotDashEntry = "Token is valid, but only dashboard entry can access this resource."
)

// RequireUser ensures the verified claims identify a user. Tokens without a
// subject are valid but anonymous and may not reach user-scoped handlers.
func RequireUser() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Subject == "" {
				Fail(w, http.StatusForbidden, msgNotLoggedIn)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireDashEntry gates operations reserved for the admin dashboard. It must
// run after TokenMiddleware.
func RequireDashEntry() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Subject == "" {
				Fail(w, http.StatusForbidden, msgNotLoggedIn)
				return
			}
			if claims.Entry != jwtx.EntryDash {
				Fail(w, http.StatusForbidden, msgNotDashEntry)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
