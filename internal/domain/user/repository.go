package user

import "context"

type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves an active user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves an active user by email (login path)
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByGoogleID retrieves an active user by linked Google account
	GetByGoogleID(ctx context.Context, googleID string) (User, error)
}
