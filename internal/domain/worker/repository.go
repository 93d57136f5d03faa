package worker

import "context"

// WorkerRepository defines data access for workers. All read methods are
// organization-scoped; GetAnyByID exists only for write-path ownership
// validation.
type WorkerRepository interface {
	Create(ctx context.Context, w Worker) (Worker, error)

	GetByID(ctx context.Context, id string, organizationID string) (Worker, error)

	GetAnyByID(ctx context.Context, id string) (Worker, error)

	List(ctx context.Context, organizationID string) ([]Worker, error)

	// ListActiveBySites returns active, non-deleted workers whose default
	// site is one of siteIDs.
	ListActiveBySites(ctx context.Context, siteIDs []string, organizationID string) ([]Worker, error)

	Update(ctx context.Context, w Worker) error

	SoftDelete(ctx context.Context, id string, organizationID string) error

	CountActive(ctx context.Context) (int64, error)
}
