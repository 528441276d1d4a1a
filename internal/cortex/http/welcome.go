package http

import (
	"net/http"

	"github.com/cortexhq/cortex/pkg/httpx"
)

// WelcomeHandler answers the unprotected root route.
func WelcomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{
			Success: true,
			Message: "Welcome to the Cortex API.",
		})
	}
}

// APIWelcomeHandler greets callers whose token verified. It sits behind the
// token middleware and proves the guard end to end.
func APIWelcomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := "Welcome to the Cortex API."
		if claims, ok := httpx.ClaimsFromContext(r.Context()); ok && claims.Name != "" {
			msg = "Welcome to the Cortex API, " + claims.Name + "."
		}
		httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{
			Success: true,
			Message: msg,
		})
	}
}
