package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cortexhq/cortex/internal/cortex/service"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/pkg/httpx"
)

type ContentsHandler struct {
	ContentService *service.ContentService
}

type contentRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	State string `json:"state"`
	Body  string `json:"body"`
}

func (h *ContentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := store.ContentFilter{
		Type:  strings.TrimSpace(r.URL.Query().Get("type")),
		State: strings.TrimSpace(r.URL.Query().Get("state")),
	}

	contents, err := h.ContentService.ListContents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, contents)
}

func (h *ContentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	content, err := h.ContentService.GetContent(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, content)
}

func (h *ContentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	content, err := h.ContentService.CreateContent(r.Context(), service.CreateContentInput{
		Title: req.Title,
		Type:  req.Type,
		State: req.State,
		Body:  req.Body,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Created(w, content)
}

func (h *ContentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	content, err := h.ContentService.UpdateContent(r.Context(), r.PathValue("id"), service.UpdateContentInput{
		Title: req.Title,
		Type:  req.Type,
		State: req.State,
		Body:  req.Body,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, content)
}

func (h *ContentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	content, err := h.ContentService.DeleteContent(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, content)
}
