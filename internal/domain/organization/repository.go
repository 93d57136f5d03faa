package organization

import "context"

type OrganizationRepository interface {
	// Create persists a new organization
	Create(ctx context.Context, org Organization) (Organization, error)

	// GetByID retrieves an organization that has not been soft-deleted
	GetByID(ctx context.Context, id string) (Organization, error)

	// CountActive returns the number of live organizations (platform analytics)
	CountActive(ctx context.Context) (int64, error)
}
