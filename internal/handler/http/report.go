package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/agritrack/attendance-backend-go/internal/domain/report"
	"github.com/agritrack/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	DailySummary(w http.ResponseWriter, r *http.Request)
	WorkerStatus(w http.ResponseWriter, r *http.Request)
	RangeSummary(w http.ResponseWriter, r *http.Request)
	LateArrivals(w http.ResponseWriter, r *http.Request)
	AnalyticsOverview(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func optionalQueryParam(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// DailySummary implements ReportHandler.
func (h *ReportHandlerImpl) DailySummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required", nil)
		return
	}

	summary, err := h.reportService.DailySummary(r.Context(), date, optionalQueryParam(r, "site_id"))
	if err != nil {
		slog.Error("DailySummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// WorkerStatus implements ReportHandler.
func (h *ReportHandlerImpl) WorkerStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.reportService.WorkerStatus(r.Context(), optionalQueryParam(r, "site_id"))
	if err != nil {
		slog.Error("WorkerStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// RangeSummary implements ReportHandler.
func (h *ReportHandlerImpl) RangeSummary(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if startDate == "" || endDate == "" {
		response.BadRequest(w, "start_date and end_date query parameters are required", nil)
		return
	}

	summary, err := h.reportService.RangeSummary(r.Context(), workerID, startDate, endDate)
	if err != nil {
		slog.Error("RangeSummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// LateArrivals implements ReportHandler.
func (h *ReportHandlerImpl) LateArrivals(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if startDate == "" || endDate == "" {
		response.BadRequest(w, "start_date and end_date query parameters are required", nil)
		return
	}

	arrivals, err := h.reportService.LateArrivals(r.Context(), startDate, endDate, optionalQueryParam(r, "site_id"))
	if err != nil {
		slog.Error("LateArrivals service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, arrivals)
}

// AnalyticsOverview implements ReportHandler.
func (h *ReportHandlerImpl) AnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "days must be a positive integer", nil)
			return
		}
		days = parsed
	}

	overview, err := h.reportService.AnalyticsOverview(r.Context(), days)
	if err != nil {
		slog.Error("AnalyticsOverview service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}
