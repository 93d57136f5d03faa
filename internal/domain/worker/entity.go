package worker

import "time"

// Worker is a person clocking in and out. SiteID is the default assignment;
// clock events snapshot their own site_id, so reassignment never rewrites
// history.
type Worker struct {
	ID             string
	OrganizationID string
	SiteID         *string
	Name           string
	Phone          *string
	EmployeeCode   *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time

	// DTO
	SiteName *string
}
