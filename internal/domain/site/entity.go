package site

import "time"

// Site is a physical farm location with a circular geofence and optional
// clock-in/out time windows. Window fields carry only a time-of-day; the
// date part is meaningless.
type Site struct {
	ID             string
	OrganizationID string
	Name           string
	Latitude       float64
	Longitude      float64
	RadiusM        float64
	CheckinStart   *time.Time
	CheckinEnd     *time.Time
	CheckoutStart  *time.Time
	CheckoutEnd    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
