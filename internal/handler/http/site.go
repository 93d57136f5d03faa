package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/agritrack/attendance-backend-go/internal/domain/site"
	"github.com/agritrack/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SiteHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type SiteHandlerImpl struct {
	siteService site.SiteService
}

func NewSiteHandler(siteService site.SiteService) SiteHandler {
	return &SiteHandlerImpl{siteService: siteService}
}

// Create implements SiteHandler.
func (h *SiteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq site.CreateSiteRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create site decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	siteResponse, err := h.siteService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create site service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.Created(w, "Site created successfully", siteResponse)
}

// Get implements SiteHandler.
func (h *SiteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	siteResponse, err := h.siteService.Get(r.Context(), siteID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, siteResponse)
}

// List implements SiteHandler.
func (h *SiteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sites, err := h.siteService.List(r.Context())
	if err != nil {
		slog.Error("List sites service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, sites)
}

// Update implements SiteHandler.
func (h *SiteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq site.UpdateSiteRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update site decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "siteID")

	// Call service
	siteResponse, err := h.siteService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update site service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.SuccessWithMessage(w, "Site updated successfully", siteResponse)
}

// Delete implements SiteHandler.
func (h *SiteHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	if err := h.siteService.Delete(r.Context(), siteID); err != nil {
		slog.Error("Delete site service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site deleted successfully", nil)
}
