package site

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agritrack/attendance-backend-go/internal/domain/site"
	"github.com/agritrack/attendance-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type SiteServiceImpl struct {
	db       *database.DB
	siteRepo site.SiteRepository
}

func NewSiteService(db *database.DB, siteRepo site.SiteRepository) site.SiteService {
	return &SiteServiceImpl{db: db, siteRepo: siteRepo}
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

// Create implements site.SiteService.
func (s *SiteServiceImpl) Create(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	created, err := s.siteRepo.Create(ctx, site.Site{
		OrganizationID: organizationID,
		Name:           req.Name,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		RadiusM:        req.RadiusM,
		CheckinStart:   site.ParseWindow(req.CheckinStart),
		CheckinEnd:     site.ParseWindow(req.CheckinEnd),
		CheckoutStart:  site.ParseWindow(req.CheckoutStart),
		CheckoutEnd:    site.ParseWindow(req.CheckoutEnd),
	})
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to create site: %w", err)
	}

	slog.Info("site created", "site_id", created.ID, "organization_id", organizationID)

	return mapSiteToResponse(created), nil
}

// Get implements site.SiteService.
func (s *SiteServiceImpl) Get(ctx context.Context, id string) (site.SiteResponse, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	found, err := s.siteRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return site.SiteResponse{}, err
	}

	return mapSiteToResponse(found), nil
}

// List implements site.SiteService.
func (s *SiteServiceImpl) List(ctx context.Context) ([]site.SiteResponse, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sites, err := s.siteRepo.List(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]site.SiteResponse, 0, len(sites))
	for _, found := range sites {
		responses = append(responses, mapSiteToResponse(found))
	}

	return responses, nil
}

// Update implements site.SiteService. Only whitelisted fields change; absent
// fields keep their stored values.
func (s *SiteServiceImpl) Update(ctx context.Context, req site.UpdateSiteRequest) (site.SiteResponse, error) {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	existing, err := s.siteRepo.GetByID(ctx, req.ID, organizationID)
	if err != nil {
		return site.SiteResponse{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Latitude != nil {
		existing.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		existing.Longitude = *req.Longitude
	}
	if req.RadiusM != nil {
		existing.RadiusM = *req.RadiusM
	}
	if req.CheckinStart != nil {
		existing.CheckinStart = site.ParseWindow(req.CheckinStart)
	}
	if req.CheckinEnd != nil {
		existing.CheckinEnd = site.ParseWindow(req.CheckinEnd)
	}
	if req.CheckoutStart != nil {
		existing.CheckoutStart = site.ParseWindow(req.CheckoutStart)
	}
	if req.CheckoutEnd != nil {
		existing.CheckoutEnd = site.ParseWindow(req.CheckoutEnd)
	}

	if err := s.siteRepo.Update(ctx, existing); err != nil {
		return site.SiteResponse{}, err
	}

	return mapSiteToResponse(existing), nil
}

// Delete implements site.SiteService. Soft delete: historical clock events
// keep referencing the site.
func (s *SiteServiceImpl) Delete(ctx context.Context, id string) error {
	organizationID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.siteRepo.SoftDelete(ctx, id, organizationID); err != nil {
		return err
	}

	slog.Info("site deleted", "site_id", id, "organization_id", organizationID)
	return nil
}

func mapSiteToResponse(s site.Site) site.SiteResponse {
	return site.SiteResponse{
		ID:            s.ID,
		Name:          s.Name,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		RadiusM:       s.RadiusM,
		CheckinStart:  site.FormatWindow(s.CheckinStart),
		CheckinEnd:    site.FormatWindow(s.CheckinEnd),
		CheckoutStart: site.FormatWindow(s.CheckoutStart),
		CheckoutEnd:   site.FormatWindow(s.CheckoutEnd),
		CreatedAt:     s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
