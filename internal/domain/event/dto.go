package event

import (
	"time"

	"github.com/agritrack/attendance-backend-go/internal/pkg/validator"
)

type SubmitEventRequest struct {
	WorkerID  string    `json:"worker_id"`
	SiteID    string    `json:"site_id"`
	DeviceID  *string   `json:"device_id,omitempty"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"event_timestamp"`
	Latitude  float64   `json:"gps_lat"`
	Longitude float64   `json:"gps_lon"`
	AccuracyM *float64  `json:"accuracy_m,omitempty"`
	Automatic bool      `json:"auto"`
}

func (r SubmitEventRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "worker_id is required"})
	}
	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{Field: "site_id", Message: "site_id is required"})
	}
	if r.EventType != string(TypeIn) && r.EventType != string(TypeOut) {
		errs = append(errs, validator.ValidationError{Field: "event_type", Message: "event_type must be IN or OUT"})
	}
	if r.Timestamp.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "event_timestamp", Message: "event_timestamp is required"})
	}
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "gps_lat", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "gps_lon", Message: "longitude must be between -180 and 180"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventFilter struct {
	SiteID   *string
	WorkerID *string
	Date     *string // YYYY-MM-DD, site-local day
	Limit    int
}

type EventResponse struct {
	ID          string   `json:"id"`
	WorkerID    string   `json:"worker_id"`
	WorkerName  *string  `json:"worker_name,omitempty"`
	SiteID      string   `json:"site_id"`
	SiteName    *string  `json:"site_name,omitempty"`
	EventType   string   `json:"event_type"`
	Timestamp   string   `json:"event_timestamp"`
	Latitude    float64  `json:"gps_lat"`
	Longitude   float64  `json:"gps_lon"`
	AccuracyM   *float64 `json:"accuracy_m"`
	IsValid     bool     `json:"is_valid"`
	DistanceM   float64  `json:"distance_m"`
	IsAutomatic bool     `json:"auto"`
}

// BulkSyncResult reports per-item outcomes of an offline batch. The batch as
// a whole succeeds even when every item is skipped or rejected; devices
// converge by replaying until everything is either accepted or a known
// duplicate.
type BulkSyncResult struct {
	Accepted          []EventResponse `json:"accepted"`
	AcceptedCount     int             `json:"accepted_count"`
	SkippedDuplicates int             `json:"skipped_duplicates"`
	Rejected          int             `json:"rejected"`
}
