package middleware

import (
	"net/http"

	"github.com/agritrack/attendance-backend-go/internal/domain/auth"
	"github.com/agritrack/attendance-backend-go/internal/domain/user"
	"github.com/agritrack/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleAdmin) {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// PlatformAdminOnly gates platform-wide analytics on the explicit
// is_platform_admin claim.
func PlatformAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		platformAdmin, ok := claims["is_platform_admin"].(bool)
		if !ok || !platformAdmin {
			response.HandleError(w, user.ErrPlatformAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
