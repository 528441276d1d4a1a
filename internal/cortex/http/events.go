package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cortexhq/cortex/internal/cortex/service"
	"github.com/cortexhq/cortex/pkg/httpx"
)

type EventsHandler struct {
	EventService *service.EventService
}

type eventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.EventService.ListEvents(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, events)
}

func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	event, err := h.EventService.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, event)
}

func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	in := service.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.StartTime != nil {
		in.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		in.EndTime = *req.EndTime
	}

	event, err := h.EventService.CreateEvent(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Created(w, event)
}

func (h *EventsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	event, err := h.EventService.UpdateEvent(r.Context(), r.PathValue("id"), service.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, event)
}

func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	event, err := h.EventService.DeleteEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	httpx.Success(w, event)
}
