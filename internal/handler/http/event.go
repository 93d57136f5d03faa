package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/agritrack/attendance-backend-go/internal/domain/event"
	"github.com/agritrack/attendance-backend-go/internal/handler/http/response"
)

type EventHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	SyncBatch(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type EventHandlerImpl struct {
	eventService event.EventService
}

func NewEventHandler(eventService event.EventService) EventHandler {
	return &EventHandlerImpl{eventService: eventService}
}

// Submit implements EventHandler. A duplicate submission returns success:
// the event is already recorded, so a retrying device must not see an error.
func (h *EventHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var submitReq event.SubmitEventRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit event decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	eventResponse, err := h.eventService.Submit(r.Context(), submitReq)
	if err != nil {
		if errors.Is(err, event.ErrDuplicateEvent) {
			response.SuccessWithMessage(w, "Event already recorded", nil)
			return
		}
		slog.Error("Submit event service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.Created(w, "Event recorded successfully", eventResponse)
}

type syncBatchRequest struct {
	Events []event.SubmitEventRequest `json:"events"`
}

// SyncBatch implements EventHandler.
func (h *EventHandlerImpl) SyncBatch(w http.ResponseWriter, r *http.Request) {
	var batchReq syncBatchRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&batchReq); err != nil {
		slog.Error("SyncBatch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if len(batchReq.Events) == 0 {
		response.BadRequest(w, "Batch must contain at least one event", nil)
		return
	}

	// Call service
	result, err := h.eventService.SyncBatch(r.Context(), batchReq.Events)
	if err != nil {
		slog.Error("SyncBatch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.Success(w, result)
}

// List implements EventHandler.
func (h *EventHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := event.EventFilter{}

	query := r.URL.Query()
	if v := query.Get("site_id"); v != "" {
		filter.SiteID = &v
	}
	if v := query.Get("worker_id"); v != "" {
		filter.WorkerID = &v
	}
	if v := query.Get("date"); v != "" {
		filter.Date = &v
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "limit must be an integer", nil)
			return
		}
		filter.Limit = limit
	}

	events, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List events service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}
