package site

import "context"

// SiteRepository defines data access for sites. Read methods take an
// organizationID so queries are always tenant-scoped; GetAnyByID exists only
// for write-path ownership validation and must never feed a response
// directly.
type SiteRepository interface {
	Create(ctx context.Context, s Site) (Site, error)

	GetByID(ctx context.Context, id string, organizationID string) (Site, error)

	// GetAnyByID retrieves a site regardless of owning organization.
	GetAnyByID(ctx context.Context, id string) (Site, error)

	List(ctx context.Context, organizationID string) ([]Site, error)

	// ListIDs returns the IDs of all live sites in the organization.
	ListIDs(ctx context.Context, organizationID string) ([]string, error)

	Update(ctx context.Context, s Site) error

	// SoftDelete marks a site deleted; historical events keep referencing it.
	SoftDelete(ctx context.Context, id string, organizationID string) error

	CountActive(ctx context.Context) (int64, error)
}
