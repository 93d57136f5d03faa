package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/agritrack/attendance-backend-go/internal/domain/organization"
	"github.com/agritrack/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type organizationRepository struct {
	db *database.DB
}

// Create implements organization.OrganizationRepository.
func (r *organizationRepository) Create(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO organizations (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, org.Name).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return organization.Organization{}, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// GetByID implements organization.OrganizationRepository.
func (r *organizationRepository) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM organizations
		WHERE id = $1 AND deleted_at IS NULL
	`

	var org organization.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.CreatedAt, &org.UpdatedAt, &org.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization by ID: %w", err)
	}

	return org, nil
}

// CountActive implements organization.OrganizationRepository.
func (r *organizationRepository) CountActive(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM organizations WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count organizations: %w", err)
	}

	return count, nil
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepository{db: db}
}
