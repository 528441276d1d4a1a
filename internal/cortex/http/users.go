package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cortexhq/cortex/internal/cortex/service"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

type createUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type updateUserRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Roles           []string `json:"roles"`
	NewPassword     string   `json:"newPassword"`
	CurrentPassword string   `json:"currentPassword"`
}

// HandleList supports ?roles=admin,editor and a free-form ?q= matched
// against name and email.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := store.UserFilter{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
	}
	for _, v := range r.URL.Query()["roles"] {
		for _, role := range strings.Split(v, ",") {
			if role = strings.TrimSpace(role); role != "" {
				filter.Roles = append(filter.Roles, role)
			}
		}
	}

	users, err := h.UserService.ListUsers(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, users)
}

func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, user)
}

func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	// The caller's entry channel decides whether the reader role gets
	// added automatically.
	claims, _ := httpx.ClaimsFromContext(r.Context())

	user, err := h.UserService.CreateUser(r.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
		Entry:    claims.Entry,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Created(w, user)
}

func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), r.PathValue("id"), service.UpdateUserInput{
		Name:            req.Name,
		Email:           req.Email,
		Roles:           req.Roles,
		NewPassword:     req.NewPassword,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, user)
}

func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.DeleteUser(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, user)
}
