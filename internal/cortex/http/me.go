package http

import (
	"net/http"

	"github.com/cortexhq/cortex/internal/cortex/service"
	"github.com/cortexhq/cortex/pkg/httpx"
)

// tokenInfo echoes the verified claims and the raw token back to the caller.
type tokenInfo struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Entry string `json:"entry"`
	Token string `json:"token"`
}

// TokenInfoHandler returns whatever the presented token decodes to. It does
// not touch the store, so it also works for tokens whose user was deleted.
func TokenInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := httpx.ClaimsFromContext(r.Context())
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "Failed to authenticate token.")
			return
		}

		httpx.Success(w, tokenInfo{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
			Entry: claims.Entry,
			Token: httpx.TokenFromContext(r.Context()),
		})
	}
}

// MeHandler loads the authenticated caller's full record from the store.
type MeHandler struct {
	UserService *service.UserService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, user)
}
