package event

import "context"

// EventService is the ingestion surface for clock events.
type EventService interface {
	// Submit processes a single real-time clock event with full validation.
	// Automatic submissions outside the geofence fail with
	// ErrGeofenceViolation; manual ones are stored with is_valid=false.
	Submit(ctx context.Context, req SubmitEventRequest) (EventResponse, error)

	// SyncBatch applies idempotent bulk-insert semantics for offline batches:
	// duplicates are skipped, cross-tenant items rejected, and the batch
	// never fails on a per-item problem.
	SyncBatch(ctx context.Context, reqs []SubmitEventRequest) (BulkSyncResult, error)

	// List returns events visible to the caller's organization.
	List(ctx context.Context, filter EventFilter) ([]EventResponse, error)
}
