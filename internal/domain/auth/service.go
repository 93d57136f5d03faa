package auth

import "context"

// AuthService issues and refreshes JWTs for dashboard principals.
type AuthService interface {
	// Register creates an organization together with its first admin user
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)

	// Login authenticates by email and password
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle exchanges an OAuth2 authorization code for tokens
	LoginWithGoogle(ctx context.Context, code string) (TokenResponse, error)

	// Refresh exchanges a refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes a refresh token
	Logout(ctx context.Context, refreshToken string) error
}
