package event

import "errors"

// Clock event domain errors
var (
	// ErrGeofenceViolation rejects automatic submissions reported outside the
	// site radius. Manual submissions are never rejected for location; they
	// are stored with is_valid=false instead.
	ErrGeofenceViolation = errors.New("location outside geofence")

	// ErrDuplicateEvent fires on the single-submission path when the
	// (worker, site, timestamp) triple already exists.
	ErrDuplicateEvent = errors.New("event already recorded")

	// ErrAccessDenied fires when the referenced worker or site belongs to a
	// different organization than the acting principal.
	ErrAccessDenied = errors.New("access denied")

	ErrInvalidEventType = errors.New("event type must be IN or OUT")
)
