package organization

import "time"

// Organization is the tenant: the unit of data isolation. Every site, worker
// and clock event belongs to exactly one organization.
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
