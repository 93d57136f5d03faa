package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agritrack/attendance-backend-go/internal/domain/auth"
	"github.com/agritrack/attendance-backend-go/internal/domain/organization"
	"github.com/agritrack/attendance-backend-go/internal/domain/user"
	"github.com/agritrack/attendance-backend-go/internal/pkg/database"
	"github.com/agritrack/attendance-backend-go/internal/pkg/jwt"
	"github.com/agritrack/attendance-backend-go/internal/pkg/oauth"
	"github.com/agritrack/attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db            *database.DB
	userRepo      user.UserRepository
	orgRepo       organization.OrganizationRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	orgRepo organization.OrganizationRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:            db,
		userRepo:      userRepo,
		orgRepo:       orgRepo,
		jwtService:    jwtService,
		googleService: googleService,
	}
}

// Register implements auth.AuthService. The organization and its first admin
// user are created in one transaction; a half-registered tenant must never
// exist.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hashed)

	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		org, err := s.orgRepo.Create(txCtx, organization.Organization{Name: req.OrganizationName})
		if err != nil {
			return err
		}

		created, err = s.userRepo.Create(txCtx, user.User{
			OrganizationID: org.ID,
			Email:          req.Email,
			FullName:       req.FullName,
			PasswordHash:   &passwordHash,
			Role:           user.RoleAdmin,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return auth.TokenResponse{}, user.ErrEmailExists
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to register organization: %w", err)
	}

	slog.Info("organization registered", "organization_id", created.OrganizationID, "user_id", created.ID)

	return s.issueTokens(created)
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// LoginWithGoogle implements auth.AuthService. Sign-in only: an unknown
// Google identity is rejected, never auto-provisioned into a tenant.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	identity, err := s.googleService.ExchangeCode(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("google sign-in failed: %w", err)
	}

	u, err := s.userRepo.GetByGoogleID(ctx, identity.GoogleID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
		}
		// Fall back to the verified email for accounts created before the
		// google_id column was populated.
		u, err = s.userRepo.GetByEmail(ctx, identity.Email)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return auth.TokenResponse{}, auth.ErrGoogleNotLinked
			}
			return auth.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
		}
	}

	return s.issueTokens(u)
}

// Refresh implements auth.AuthService. Refresh tokens rotate on every use;
// the presented token is revoked once a replacement is issued.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	resp, err := s.issueTokens(u)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	s.jwtService.RevokeToken(refreshToken)
	return resp, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

func (s *AuthServiceImpl) issueTokens(u user.User) (auth.TokenResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
		OrganizationID:   u.OrganizationID,
		Role:             string(u.Role),
	}, nil
}
