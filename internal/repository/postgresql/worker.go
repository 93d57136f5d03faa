package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/agritrack/attendance-backend-go/internal/domain/worker"
	"github.com/agritrack/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerRepository struct {
	db *database.DB
}

// Create implements worker.WorkerRepository.
func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (organization_id, site_id, name, phone, employee_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		w.OrganizationID, w.SiteID, w.Name, w.Phone, w.EmployeeCode,
	).Scan(&w.ID, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return w, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepository) GetByID(ctx context.Context, id string, organizationID string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.organization_id, w.site_id, w.name, w.phone, w.employee_code,
			w.is_active, w.created_at, w.updated_at, w.deleted_at, s.name
		FROM workers w
		LEFT JOIN sites s ON s.id = w.site_id
		WHERE w.id = $1 AND w.organization_id = $2 AND w.deleted_at IS NULL
	`

	var w worker.Worker
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&w.ID, &w.OrganizationID, &w.SiteID, &w.Name, &w.Phone, &w.EmployeeCode,
		&w.IsActive, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt, &w.SiteName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by ID: %w", err)
	}

	return w, nil
}

// GetAnyByID implements worker.WorkerRepository.
func (r *workerRepository) GetAnyByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, site_id, name, phone, employee_code,
			is_active, created_at, updated_at, deleted_at
		FROM workers
		WHERE id = $1
	`

	var w worker.Worker
	err := q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.OrganizationID, &w.SiteID, &w.Name, &w.Phone, &w.EmployeeCode,
		&w.IsActive, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by ID: %w", err)
	}

	return w, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepository) List(ctx context.Context, organizationID string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.organization_id, w.site_id, w.name, w.phone, w.employee_code,
			w.is_active, w.created_at, w.updated_at, w.deleted_at, s.name
		FROM workers w
		LEFT JOIN sites s ON s.id = w.site_id
		WHERE w.organization_id = $1 AND w.deleted_at IS NULL
		ORDER BY w.name ASC
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	workers := []worker.Worker{}
	for rows.Next() {
		var w worker.Worker
		err := rows.Scan(
			&w.ID, &w.OrganizationID, &w.SiteID, &w.Name, &w.Phone, &w.EmployeeCode,
			&w.IsActive, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt, &w.SiteName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}

	return workers, nil
}

// ListActiveBySites implements worker.WorkerRepository.
func (r *workerRepository) ListActiveBySites(ctx context.Context, siteIDs []string, organizationID string) ([]worker.Worker, error) {
	if len(siteIDs) == 0 {
		return []worker.Worker{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, site_id, name, phone, employee_code,
			is_active, created_at, updated_at, deleted_at
		FROM workers
		WHERE organization_id = $1 AND site_id = ANY($2) AND is_active AND deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, organizationID, siteIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers by sites: %w", err)
	}
	defer rows.Close()

	workers := []worker.Worker{}
	for rows.Next() {
		var w worker.Worker
		err := rows.Scan(
			&w.ID, &w.OrganizationID, &w.SiteID, &w.Name, &w.Phone, &w.EmployeeCode,
			&w.IsActive, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}

	return workers, nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepository) Update(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET site_id = $1, name = $2, phone = $3, employee_code = $4, is_active = $5,
			updated_at = NOW()
		WHERE id = $6 AND organization_id = $7 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		w.SiteID, w.Name, w.Phone, w.EmployeeCode, w.IsActive,
		w.ID, w.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

// SoftDelete implements worker.WorkerRepository.
func (r *workerRepository) SoftDelete(ctx context.Context, id string, organizationID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

// CountActive implements worker.WorkerRepository.
func (r *workerRepository) CountActive(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM workers WHERE is_active AND deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count workers: %w", err)
	}

	return count, nil
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}
