package event

import "time"

type Type string

const (
	TypeIn  Type = "IN"
	TypeOut Type = "OUT"
)

// ClockEvent is an immutable, append-only GPS observation tagged IN or OUT.
// Corrections happen by inserting compensating events, never by editing.
//
// The triple (WorkerID, SiteID, Timestamp) is the natural dedup key for
// offline sync: a second submission with an identical triple is a no-op.
type ClockEvent struct {
	ID             string
	WorkerID       string
	SiteID         string
	OrganizationID string
	DeviceID       *string
	EventType      Type
	Timestamp      time.Time // UTC instant, caller-supplied
	Latitude       float64
	Longitude      float64
	AccuracyM      *float64
	IsValid        bool
	DistanceM      float64
	IsAutomatic    bool
	CreatedAt      time.Time

	// DTO
	WorkerName *string
	SiteName   *string
}
