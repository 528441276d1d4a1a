package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cortexhq/cortex/pkg/jwtx"
	"github.com/cortexhq/cortex/pkg/slogx"
)

// TokenHeader is the dedicated header clients may supply a token in.
const TokenHeader = "x-access-token"

// maxTokenBodyBytes bounds how much of a request body the guard will buffer
// while looking for a body-supplied token.
const maxTokenBodyBytes = 1 << 20

// Guard messages. Clients distinguish the two failure modes by message.
const (
	msgNoToken      = "No token provided."
	msgInvalidToken = "Failed to authenticate token."
)

// TokenMiddleware is the single funnel every protected route passes through.
// It extracts a token from the JSON body field "token", the query parameter
// "token", or the x-access-token header, first non-empty wins, verifies it,
// and attaches the decoded claims to the request context. On any failure the
// wrapped handler never runs.
func TokenMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := ExtractToken(r)
			if raw == "" {
				Fail(w, http.StatusUnauthorized, msgNoToken)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verification failed", "err", err)
				Fail(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			ctx = context.WithValue(ctx, CtxKeyUserID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyToken, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken pulls a token out of the request, checking the JSON body
// field, the query parameter, then the header. Priority order matters: a
// body token wins over a query token wins over a header token.
func ExtractToken(r *http.Request) string {
	if tok := tokenFromBody(r); tok != "" {
		return tok
	}
	if tok := strings.TrimSpace(r.URL.Query().Get("token")); tok != "" {
		return tok
	}
	return strings.TrimSpace(r.Header.Get(TokenHeader))
}

// tokenFromBody peeks at a JSON request body for a "token" field. The body is
// re-buffered afterwards so downstream handlers can still decode it.
func tokenFromBody(r *http.Request) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTokenBodyBytes))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	// A body that fails to decode is not the guard's problem, the handler
	// reports its own validation error.
	var probe struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return strings.TrimSpace(probe.Token)
}
