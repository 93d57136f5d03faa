package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agritrack/attendance-backend-go/internal/domain/site"
	"github.com/agritrack/attendance-backend-go/internal/domain/worker"
	"github.com/agritrack/attendance-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type WorkerServiceImpl struct {
	db         *database.DB
	workerRepo worker.WorkerRepository
	siteRepo   site.SiteRepository
}

func NewWorkerService(db *database.DB, workerRepo worker.WorkerRepository, siteRepo site.SiteRepository) worker.WorkerService {
	return &WorkerServiceImpl{db: db, workerRepo: workerRepo, siteRepo: siteRepo}
}

// Helper function to extract claims from context
func getClaimsFromContext(ctx context.Context) (organizationID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	return organizationID, nil
}

// validateSiteAssignment checks that the default site, when given, belongs to
// the caller's organization.
func (s *WorkerServiceImpl) validateSiteAssignment(ctx context.Context, siteID *string, organizationID string) error {
	if siteID == nil {
		return nil
	}
	owned, err := s.siteRepo.GetAnyByID(ctx, *siteID)
	if err != nil {
		if errors.Is(err, site.ErrSiteNotFound) {
			return site.ErrSiteNotFound
		}
		return fmt.Errorf("failed to look up site: %w", err)
	}
	if owned.OrganizationID != organizationID || owned.DeletedAt != nil {
		return site.ErrSiteNotFound
	}
	return nil
}

// Create implements worker.WorkerService.
func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	if err := s.validateSiteAssignment(ctx, req.SiteID, organizationID); err != nil {
		return worker.WorkerResponse{}, err
	}

	created, err := s.workerRepo.Create(ctx, worker.Worker{
		OrganizationID: organizationID,
		SiteID:         req.SiteID,
		Name:           req.Name,
		Phone:          req.Phone,
		EmployeeCode:   req.EmployeeCode,
	})
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}

	slog.Info("worker created", "worker_id", created.ID, "organization_id", organizationID)

	return mapWorkerToResponse(created), nil
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	found, err := s.workerRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return mapWorkerToResponse(found), nil
}

// List implements worker.WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context) ([]worker.WorkerResponse, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	workers, err := s.workerRepo.List(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, found := range workers {
		responses = append(responses, mapWorkerToResponse(found))
	}

	return responses, nil
}

// Update implements worker.WorkerService. Only whitelisted fields change.
// Reassigning the default site never rewrites historical events; they
// snapshot their own site_id.
func (s *WorkerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	existing, err := s.workerRepo.GetByID(ctx, req.ID, organizationID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if req.SiteID != nil {
		if err := s.validateSiteAssignment(ctx, req.SiteID, organizationID); err != nil {
			return worker.WorkerResponse{}, err
		}
		existing.SiteID = req.SiteID
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.EmployeeCode != nil {
		existing.EmployeeCode = req.EmployeeCode
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.workerRepo.Update(ctx, existing); err != nil {
		return worker.WorkerResponse{}, err
	}

	return mapWorkerToResponse(existing), nil
}

// Delete implements worker.WorkerService.
func (s *WorkerServiceImpl) Delete(ctx context.Context, id string) error {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.workerRepo.SoftDelete(ctx, id, organizationID); err != nil {
		return err
	}

	slog.Info("worker deleted", "worker_id", id, "organization_id", organizationID)
	return nil
}

func mapWorkerToResponse(w worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:           w.ID,
		Name:         w.Name,
		Phone:        w.Phone,
		EmployeeCode: w.EmployeeCode,
		SiteID:       w.SiteID,
		SiteName:     w.SiteName,
		IsActive:     w.IsActive,
		CreatedAt:    w.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
