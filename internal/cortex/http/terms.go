package http

import (
	"encoding/json"
	"net/http"

	"github.com/cortexhq/cortex/internal/cortex/service"
	"github.com/cortexhq/cortex/pkg/httpx"
)

type TermsHandler struct {
	TermService *service.TermService
}

type termRequest struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

func (h *TermsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	terms, err := h.TermService.ListTerms(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, terms)
}

func (h *TermsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	term, err := h.TermService.GetTerm(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, term)
}

func (h *TermsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req termRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	term, err := h.TermService.CreateTerm(r.Context(), service.TermInput{
		Name:       req.Name,
		Definition: req.Definition,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Created(w, term)
}

func (h *TermsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req termRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	term, err := h.TermService.UpdateTerm(r.Context(), r.PathValue("id"), service.TermInput{
		Name:       req.Name,
		Definition: req.Definition,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, term)
}

func (h *TermsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	term, err := h.TermService.DeleteTerm(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, term)
}
