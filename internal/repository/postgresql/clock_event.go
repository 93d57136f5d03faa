package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agritrack/attendance-backend-go/internal/domain/event"
	"github.com/agritrack/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// clockEventRepository stores clock events. Events carry no organization
// column of their own; tenancy is resolved through the owning site on every
// read. The zone is used to translate local-day filters into UTC ranges.
type clockEventRepository struct {
	db   *database.DB
	zone *time.Location
}

// Create implements event.EventRepository.
//
// The unique index on (worker_id, site_id, event_timestamp) is the last line
// of defense against concurrent duplicate submissions; a violation maps to
// ErrDuplicateEvent so both submitters see the same outcome.
func (r *clockEventRepository) Create(ctx context.Context, e event.ClockEvent) (event.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clock_events (worker_id, site_id, device_id, event_type, event_timestamp,
			gps_lat, gps_lon, accuracy_m, is_valid, distance_m, is_automatic)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		e.WorkerID, e.SiteID, e.DeviceID, e.EventType, e.Timestamp,
		e.Latitude, e.Longitude, e.AccuracyM, e.IsValid, e.DistanceM, e.IsAutomatic,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return event.ClockEvent{}, event.ErrDuplicateEvent
		}
		return event.ClockEvent{}, fmt.Errorf("failed to create clock event: %w", err)
	}

	return e, nil
}

// Exists implements event.EventRepository.
func (r *clockEventRepository) Exists(ctx context.Context, workerID, siteID string, ts time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM clock_events
			WHERE worker_id = $1 AND site_id = $2 AND event_timestamp = $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, workerID, siteID, ts).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check clock event existence: %w", err)
	}

	return exists, nil
}

// List implements event.EventRepository.
func (r *clockEventRepository) List(ctx context.Context, filter event.EventFilter, organizationID string) ([]event.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.worker_id, e.site_id, e.device_id, e.event_type, e.event_timestamp,
			e.gps_lat, e.gps_lon, e.accuracy_m, e.is_valid, e.distance_m, e.is_automatic,
			e.created_at, w.name, s.name, s.organization_id
		FROM clock_events e
		JOIN sites s ON s.id = e.site_id
		JOIN workers w ON w.id = e.worker_id
		WHERE s.organization_id = $1
	`

	args := []interface{}{organizationID}
	argPos := 2

	if filter.SiteID != nil {
		query += fmt.Sprintf(" AND e.site_id = $%d", argPos)
		args = append(args, *filter.SiteID)
		argPos++
	}
	if filter.WorkerID != nil {
		query += fmt.Sprintf(" AND e.worker_id = $%d", argPos)
		args = append(args, *filter.WorkerID)
		argPos++
	}
	if filter.Date != nil {
		day, err := time.ParseInLocation("2006-01-02", *filter.Date, r.zone)
		if err != nil {
			return nil, fmt.Errorf("invalid date filter: %w", err)
		}
		from := day.UTC()
		to := day.AddDate(0, 0, 1).UTC()
		query += fmt.Sprintf(" AND e.event_timestamp >= $%d AND e.event_timestamp < $%d", argPos, argPos+1)
		args = append(args, from, to)
		argPos += 2
	}

	query += " ORDER BY e.event_timestamp DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT $%d", argPos)
	args = append(args, limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock events: %w", err)
	}
	defer rows.Close()

	return collectClockEvents(rows, true)
}

// ListWorkerRange implements event.EventRepository.
func (r *clockEventRepository) ListWorkerRange(ctx context.Context, workerID string, from, to time.Time, organizationID string) ([]event.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.worker_id, e.site_id, e.device_id, e.event_type, e.event_timestamp,
			e.gps_lat, e.gps_lon, e.accuracy_m, e.is_valid, e.distance_m, e.is_automatic,
			e.created_at
		FROM clock_events e
		JOIN sites s ON s.id = e.site_id
		WHERE e.worker_id = $1 AND s.organization_id = $2
			AND e.event_timestamp >= $3 AND e.event_timestamp < $4
		ORDER BY e.event_timestamp ASC
	`

	rows, err := q.Query(ctx, query, workerID, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker clock events: %w", err)
	}
	defer rows.Close()

	return collectClockEvents(rows, false)
}

// ListSitesRange implements event.EventRepository.
func (r *clockEventRepository) ListSitesRange(ctx context.Context, siteIDs []string, from, to time.Time, organizationID string) ([]event.ClockEvent, error) {
	if len(siteIDs) == 0 {
		return []event.ClockEvent{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.worker_id, e.site_id, e.device_id, e.event_type, e.event_timestamp,
			e.gps_lat, e.gps_lon, e.accuracy_m, e.is_valid, e.distance_m, e.is_automatic,
			e.created_at
		FROM clock_events e
		JOIN sites s ON s.id = e.site_id
		WHERE e.site_id = ANY($1) AND s.organization_id = $2
			AND e.event_timestamp >= $3 AND e.event_timestamp < $4
		ORDER BY e.worker_id ASC, e.event_timestamp ASC
	`

	rows, err := q.Query(ctx, query, siteIDs, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list site clock events: %w", err)
	}
	defer rows.Close()

	return collectClockEvents(rows, false)
}

// CountSince implements event.EventRepository.
func (r *clockEventRepository) CountSince(ctx context.Context, from time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM clock_events WHERE event_timestamp >= $1`, from,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clock events: %w", err)
	}

	return count, nil
}

// CheckInTrend implements event.EventRepository.
func (r *clockEventRepository) CheckInTrend(ctx context.Context, from time.Time) ([]event.DayCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT TO_CHAR(event_timestamp AT TIME ZONE $1::interval, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM clock_events
		WHERE event_type = 'IN' AND event_timestamp >= $2
		GROUP BY day
		ORDER BY day ASC
	`

	_, offsetSecs := time.Now().In(r.zone).Zone()
	offset := fmt.Sprintf("%d seconds", offsetSecs)

	rows, err := q.Query(ctx, query, offset, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-in trend: %w", err)
	}
	defer rows.Close()

	trend := []event.DayCount{}
	for rows.Next() {
		var dc event.DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		trend = append(trend, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trend rows: %w", err)
	}

	return trend, nil
}

func collectClockEvents(rows pgx.Rows, withNames bool) ([]event.ClockEvent, error) {
	events := []event.ClockEvent{}
	for rows.Next() {
		var e event.ClockEvent
		var err error
		if withNames {
			err = rows.Scan(
				&e.ID, &e.WorkerID, &e.SiteID, &e.DeviceID, &e.EventType, &e.Timestamp,
				&e.Latitude, &e.Longitude, &e.AccuracyM, &e.IsValid, &e.DistanceM, &e.IsAutomatic,
				&e.CreatedAt, &e.WorkerName, &e.SiteName, &e.OrganizationID,
			)
		} else {
			err = rows.Scan(
				&e.ID, &e.WorkerID, &e.SiteID, &e.DeviceID, &e.EventType, &e.Timestamp,
				&e.Latitude, &e.Longitude, &e.AccuracyM, &e.IsValid, &e.DistanceM, &e.IsAutomatic,
				&e.CreatedAt,
			)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clock events: %w", err)
	}

	return events, nil
}

func NewClockEventRepository(db *database.DB, zone *time.Location) event.EventRepository {
	return &clockEventRepository{db: db, zone: zone}
}
