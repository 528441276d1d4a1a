package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cortexhq/cortex/internal/cortex/service"
	"github.com/cortexhq/cortex/pkg/httpx"
)

type AuthenticateHandler struct {
	AuthService *service.AuthService
}

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Entry    string `json:"entry"`
}

// authenticateResponse is flat rather than enveloped: the token and the
// claim fields sit at the top level next to the success flag, matching what
// the frontend clients already parse.
type authenticateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Entry   string `json:"entry"`
}

func (h *AuthenticateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	token, claims, err := h.AuthService.Authenticate(
		r.Context(),
		strings.TrimSpace(req.Email),
		req.Password,
		strings.TrimSpace(req.Entry),
	)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authenticateResponse{
		Success: true,
		Message: "Enjoy your " + claims.Role + " token!",
		Token:   token,
		ID:      claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Role:    claims.Role,
		Entry:   claims.Entry,
	})
}
