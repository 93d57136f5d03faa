package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agritrack/attendance-backend-go/internal/domain/event"
	"github.com/agritrack/attendance-backend-go/internal/domain/site"
	"github.com/agritrack/attendance-backend-go/internal/domain/worker"
	"github.com/agritrack/attendance-backend-go/internal/pkg/geo"
	"github.com/agritrack/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type EventServiceImpl struct {
	eventRepo  event.EventRepository
	workerRepo worker.WorkerRepository
	siteRepo   site.SiteRepository
}

func NewEventService(
	eventRepo event.EventRepository,
	workerRepo worker.WorkerRepository,
	siteRepo site.SiteRepository,
) event.EventService {
	return &EventServiceImpl{
		eventRepo:  eventRepo,
		workerRepo: workerRepo,
		siteRepo:   siteRepo,
	}
}

// Helper function to extract claims from context
func getClaimsFromContext(ctx context.Context) (organizationID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	return organizationID, nil
}

// resolveTarget validates that the referenced worker and site exist, are
// live, and belong to the caller's organization. Lookups are deliberately
// unscoped so a cross-tenant reference maps to ErrAccessDenied instead of
// being indistinguishable from a missing row.
func (s *EventServiceImpl) resolveTarget(ctx context.Context, req event.SubmitEventRequest, organizationID string) (worker.Worker, site.Site, error) {
	w, err := s.workerRepo.GetAnyByID(ctx, req.WorkerID)
	if err != nil {
		return worker.Worker{}, site.Site{}, err
	}
	if w.OrganizationID != organizationID {
		return worker.Worker{}, site.Site{}, event.ErrAccessDenied
	}
	if w.DeletedAt != nil || !w.IsActive {
		return worker.Worker{}, site.Site{}, worker.ErrWorkerNotFound
	}

	st, err := s.siteRepo.GetAnyByID(ctx, req.SiteID)
	if err != nil {
		return worker.Worker{}, site.Site{}, err
	}
	if st.OrganizationID != organizationID {
		return worker.Worker{}, site.Site{}, event.ErrAccessDenied
	}
	if st.DeletedAt != nil {
		return worker.Worker{}, site.Site{}, site.ErrSiteNotFound
	}

	return w, st, nil
}

// buildEvent runs geofence validation and assembles the entity. With
// rejectAutomatic set, automatic submissions outside the fence fail; any
// other out-of-fence submission is stored flagged invalid so supervisors can
// review it later.
func buildEvent(req event.SubmitEventRequest, st site.Site, organizationID string, rejectAutomatic bool) (event.ClockEvent, error) {
	inside, distance := geo.WithinRadius(req.Latitude, req.Longitude, st.Latitude, st.Longitude, st.RadiusM)

	if !inside && rejectAutomatic && req.Automatic {
		return event.ClockEvent{}, fmt.Errorf("%w: %.1fm from site center (radius %.0fm)",
			event.ErrGeofenceViolation, distance, st.RadiusM)
	}

	return event.ClockEvent{
		WorkerID:       req.WorkerID,
		SiteID:         req.SiteID,
		OrganizationID: organizationID,
		DeviceID:       req.DeviceID,
		EventType:      event.Type(req.EventType),
		Timestamp:      req.Timestamp.UTC(),
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AccuracyM:      req.AccuracyM,
		IsValid:        inside,
		DistanceM:      distance,
		IsAutomatic:    req.Automatic,
	}, nil
}

// Submit implements event.EventService.
func (s *EventServiceImpl) Submit(ctx context.Context, req event.SubmitEventRequest) (event.EventResponse, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return event.EventResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}

	w, st, err := s.resolveTarget(ctx, req, organizationID)
	if err != nil {
		return event.EventResponse{}, err
	}

	e, err := buildEvent(req, st, organizationID, true)
	if err != nil {
		return event.EventResponse{}, err
	}

	// The unique index backs this check up: a concurrent submitter losing the
	// race gets ErrDuplicateEvent from Create instead of a constraint error.
	exists, err := s.eventRepo.Exists(ctx, req.WorkerID, req.SiteID, e.Timestamp)
	if err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to check for duplicate: %w", err)
	}
	if exists {
		return event.EventResponse{}, event.ErrDuplicateEvent
	}

	created, err := s.eventRepo.Create(ctx, e)
	if err != nil {
		return event.EventResponse{}, err
	}

	if !created.IsValid {
		slog.Warn("manual clock event outside geofence",
			"event_id", created.ID, "worker_id", created.WorkerID,
			"site_id", created.SiteID, "distance_m", created.DistanceM)
	}

	created.WorkerName = &w.Name
	created.SiteName = &st.Name

	return mapEventToResponse(created), nil
}

// SyncBatch implements event.EventService. Offline devices replay their
// queues here; the batch itself always succeeds and every item lands in
// exactly one bucket. Replaying the same batch is a no-op.
func (s *EventServiceImpl) SyncBatch(ctx context.Context, reqs []event.SubmitEventRequest) (event.BulkSyncResult, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return event.BulkSyncResult{}, err
	}

	// Correlation ID so one device's replay can be traced across log lines.
	batchID := uuid.NewString()

	result := event.BulkSyncResult{
		Accepted: []event.EventResponse{},
	}

	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return event.BulkSyncResult{}, err
		}

		if err := req.Validate(); err != nil {
			result.Rejected++
			continue
		}

		w, st, err := s.resolveTarget(ctx, req, organizationID)
		if err != nil {
			result.Rejected++
			continue
		}

		// Synced events arrive after the fact, so real-time rejection is
		// pointless even for automatic ones: out-of-fence items are stored
		// flagged invalid instead.
		e, err := buildEvent(req, st, organizationID, false)
		if err != nil {
			result.Rejected++
			continue
		}

		exists, err := s.eventRepo.Exists(ctx, req.WorkerID, req.SiteID, e.Timestamp)
		if err != nil {
			return event.BulkSyncResult{}, fmt.Errorf("failed to check for duplicate: %w", err)
		}
		if exists {
			result.SkippedDuplicates++
			continue
		}

		created, err := s.eventRepo.Create(ctx, e)
		if err != nil {
			if errors.Is(err, event.ErrDuplicateEvent) {
				result.SkippedDuplicates++
				continue
			}
			return event.BulkSyncResult{}, err
		}

		created.WorkerName = &w.Name
		created.SiteName = &st.Name

		result.Accepted = append(result.Accepted, mapEventToResponse(created))
		result.AcceptedCount++
	}

	slog.Info("bulk sync completed",
		"batch_id", batchID,
		"organization_id", organizationID, "submitted", len(reqs),
		"accepted", result.AcceptedCount, "skipped", result.SkippedDuplicates,
		"rejected", result.Rejected)

	return result, nil
}

// List implements event.EventService.
func (s *EventServiceImpl) List(ctx context.Context, filter event.EventFilter) ([]event.EventResponse, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if filter.Date != nil {
		if _, ok := validator.IsValidDate(*filter.Date); !ok {
			return nil, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
		}
	}

	events, err := s.eventRepo.List(ctx, filter, organizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]event.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, mapEventToResponse(e))
	}

	return responses, nil
}

func mapEventToResponse(e event.ClockEvent) event.EventResponse {
	return event.EventResponse{
		ID:          e.ID,
		WorkerID:    e.WorkerID,
		WorkerName:  e.WorkerName,
		SiteID:      e.SiteID,
		SiteName:    e.SiteName,
		EventType:   string(e.EventType),
		Timestamp:   e.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		AccuracyM:   e.AccuracyM,
		IsValid:     e.IsValid,
		DistanceM:   e.DistanceM,
		IsAutomatic: e.IsAutomatic,
	}
}
