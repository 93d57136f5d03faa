package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// User is a dashboard principal (organization admin or site manager).
// Workers do not log in; their events are submitted by field devices.
//
// IsPlatformAdmin is an explicit capability flag. Platform-wide analytics
// must never key off a magic organization ID.
type User struct {
	ID              string
	OrganizationID  string
	Email           string
	FullName        string
	PasswordHash    *string
	GoogleID        *string
	Role            Role
	IsPlatformAdmin bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}
