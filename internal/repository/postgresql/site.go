package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/agritrack/attendance-backend-go/internal/domain/site"
	"github.com/agritrack/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type siteRepository struct {
	db *database.DB
}

const siteColumns = `
	id, organization_id, name, latitude, longitude, radius_m,
	checkin_start, checkin_end, checkout_start, checkout_end,
	created_at, updated_at, deleted_at
`

func scanSite(row pgx.Row) (site.Site, error) {
	var s site.Site
	err := row.Scan(
		&s.ID, &s.OrganizationID, &s.Name, &s.Latitude, &s.Longitude, &s.RadiusM,
		&s.CheckinStart, &s.CheckinEnd, &s.CheckoutStart, &s.CheckoutEnd,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	return s, err
}

// Create implements site.SiteRepository.
func (r *siteRepository) Create(ctx context.Context, s site.Site) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sites (organization_id, name, latitude, longitude, radius_m,
			checkin_start, checkin_end, checkout_start, checkout_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.OrganizationID, s.Name, s.Latitude, s.Longitude, s.RadiusM,
		s.CheckinStart, s.CheckinEnd, s.CheckoutStart, s.CheckoutEnd,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return site.Site{}, fmt.Errorf("failed to create site: %w", err)
	}

	return s, nil
}

// GetByID implements site.SiteRepository.
func (r *siteRepository) GetByID(ctx context.Context, id string, organizationID string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + siteColumns + `
		FROM sites
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL`

	s, err := scanSite(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site by ID: %w", err)
	}

	return s, nil
}

// GetAnyByID implements site.SiteRepository.
func (r *siteRepository) GetAnyByID(ctx context.Context, id string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = $1`

	s, err := scanSite(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site by ID: %w", err)
	}

	return s, nil
}

// List implements site.SiteRepository.
func (r *siteRepository) List(ctx context.Context, organizationID string) ([]site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + siteColumns + `
		FROM sites
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	sites := []site.Site{}
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sites: %w", err)
	}

	return sites, nil
}

// ListIDs implements site.SiteRepository.
func (r *siteRepository) ListIDs(ctx context.Context, organizationID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id FROM sites WHERE organization_id = $1 AND deleted_at IS NULL`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list site IDs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan site ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate site IDs: %w", err)
	}

	return ids, nil
}

// Update implements site.SiteRepository.
func (r *siteRepository) Update(ctx context.Context, s site.Site) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sites
		SET name = $1, latitude = $2, longitude = $3, radius_m = $4,
			checkin_start = $5, checkin_end = $6, checkout_start = $7, checkout_end = $8,
			updated_at = NOW()
		WHERE id = $9 AND organization_id = $10 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		s.Name, s.Latitude, s.Longitude, s.RadiusM,
		s.CheckinStart, s.CheckinEnd, s.CheckoutStart, s.CheckoutEnd,
		s.ID, s.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}

	return nil
}

// SoftDelete implements site.SiteRepository.
func (r *siteRepository) SoftDelete(ctx context.Context, id string, organizationID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sites
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}

	return nil
}

// CountActive implements site.SiteRepository.
func (r *siteRepository) CountActive(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM sites WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sites: %w", err)
	}

	return count, nil
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepository{db: db}
}
