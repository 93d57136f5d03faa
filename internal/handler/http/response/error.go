package response

import (
	"errors"
	"net/http"

	"github.com/agritrack/attendance-backend-go/internal/domain/auth"
	"github.com/agritrack/attendance-backend-go/internal/domain/event"
	"github.com/agritrack/attendance-backend-go/internal/domain/organization"
	"github.com/agritrack/attendance-backend-go/internal/domain/report"
	"github.com/agritrack/attendance-backend-go/internal/domain/site"
	"github.com/agritrack/attendance-backend-go/internal/domain/user"
	"github.com/agritrack/attendance-backend-go/internal/domain/worker"
	"github.com/agritrack/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrGoogleNotLinked):
		Forbidden(w, "No account is linked to this Google identity")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrPlatformAdminRequired):
		Forbidden(w, "Platform admin privilege required")

	// Tenant scoping errors. Cross-organization references are reported as
	// not found so callers cannot probe which IDs exist elsewhere.
	case errors.Is(err, event.ErrAccessDenied):
		NotFound(w, "Resource not found")
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")

	// Clock event domain errors
	case errors.Is(err, event.ErrGeofenceViolation):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, event.ErrDuplicateEvent):
		Conflict(w, "Event already recorded")
	case errors.Is(err, event.ErrInvalidEventType):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
