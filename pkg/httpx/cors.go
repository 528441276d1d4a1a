package httpx

import "net/http"

// CORS allows cross-origin requests from the dashboard and app frontends.
// The upstream API served `cors()` with defaults (allow any origin), which we
// preserve; lock this down per-deployment if the frontends gain fixed hosts.
func CORS() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, "+TokenHeader)

			// Preflight across all routes.
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
