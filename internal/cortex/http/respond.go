package http

import (
	"errors"
	"net/http"

	"github.com/cortexhq/cortex/internal/cortex/service"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/pkg/httpx"
	"github.com/cortexhq/cortex/pkg/slogx"
)

const (
	msgInvalidCredentials = "Authentication failed. Wrong email or password."
	msgNotAdministrator   = "Authentication failed. You are not an administrator."
	msgWrongPassword      = "Updating password failed. Incorrect current password."
	msgEmailExists        = "A user with this email already exists."
	msgNotFound           = "Not found."
	msgInvalidJSON        = "Request body must be valid JSON."
	msgInternal           = "An internal error occurred."
)

// respondServiceError maps service and store failures onto the response
// envelope. Anything unrecognised is logged and reported as a 500 without
// leaking detail to the caller.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		httpx.Fail(w, http.StatusBadRequest, ve.Message)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.Fail(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, service.ErrNotAdmin):
		httpx.Fail(w, http.StatusForbidden, msgNotAdministrator)
	case errors.Is(err, service.ErrWrongPassword):
		httpx.Fail(w, http.StatusForbidden, msgWrongPassword)
	case errors.Is(err, service.ErrEmailExists):
		httpx.Fail(w, http.StatusConflict, msgEmailExists)
	case errors.Is(err, store.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, msgNotFound)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.Fail(w, http.StatusInternalServerError, msgInternal)
	}
}
