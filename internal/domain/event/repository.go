package event

import (
	"context"
	"time"
)

// EventRepository is the append-only store for clock events.
//
// The storage layer enforces a unique index on (worker_id, site_id,
// event_timestamp). Create must translate that constraint violation into
// ErrDuplicateEvent so concurrent submitters of the same logical event
// converge on the duplicate outcome instead of surfacing a fatal error.
type EventRepository interface {
	Create(ctx context.Context, e ClockEvent) (ClockEvent, error)

	// Exists reports whether the dedup triple is already stored.
	Exists(ctx context.Context, workerID, siteID string, ts time.Time) (bool, error)

	// List returns events scoped to the organization's sites, newest first.
	List(ctx context.Context, filter EventFilter, organizationID string) ([]ClockEvent, error)

	// ListWorkerRange returns one worker's events in [from, to), ascending.
	ListWorkerRange(ctx context.Context, workerID string, from, to time.Time, organizationID string) ([]ClockEvent, error)

	// ListSitesRange returns events for the given sites in [from, to),
	// ordered by worker then timestamp ascending.
	ListSitesRange(ctx context.Context, siteIDs []string, from, to time.Time, organizationID string) ([]ClockEvent, error)

	// CountSince counts all events recorded on or after from (platform analytics).
	CountSince(ctx context.Context, from time.Time) (int64, error)

	// CheckInTrend returns daily IN-event counts since from (platform analytics).
	CheckInTrend(ctx context.Context, from time.Time) ([]DayCount, error)
}

type DayCount struct {
	Day   string `json:"date"`
	Count int64  `json:"total_check_ins"`
}
