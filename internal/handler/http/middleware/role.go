package middleware

import (
	"net/http"

	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
)

// ManagerOnly restricts a route to roles that can review requests and edit
// other employees' records (admin and hr).
func ManagerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}
		if !identity.Role.CanManageAttendance() {
			response.Forbidden(w, "Insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}
