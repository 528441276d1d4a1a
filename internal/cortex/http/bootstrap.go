package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cortexhq/cortex/internal/cortex/service"
	"github.com/cortexhq/cortex/pkg/httpx"
	"github.com/cortexhq/cortex/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

type bootstrapRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP seeds the first administrator account. Only usable while the
// user table is empty and a bootstrap token is configured.
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	var req bootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	user, err := h.BootstrapService.Bootstrap(r.Context(), service.BootstrapInput{
		Token:    req.Token,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapDisabled):
			httpx.Fail(w, http.StatusNotFound, "Bootstrap is not enabled.")
		case errors.Is(err, service.ErrBootstrapToken):
			httpx.Fail(w, http.StatusUnauthorized, "Invalid bootstrap token.")
		case errors.Is(err, service.ErrAlreadyBootstrapped):
			httpx.Fail(w, http.StatusForbidden, "System has already been bootstrapped.")
		default:
			respondServiceError(w, r, err)
		}
		return
	}

	l.Info("system bootstrapped", "user_id", user.ID)
	httpx.Created(w, user)
}
