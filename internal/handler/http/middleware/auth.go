package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/auth"
	"github.com/kriyahr/hrms-backend-go/internal/domain/user"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
)

// Identity is the authenticated caller, extracted from verified access
// token claims.
type Identity struct {
	UserID     string
	Email      string
	EmployeeID *string
	Role       user.Role
}

// IdentityFromContext returns the caller identity placed by AuthRequired.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

type identityKey struct{}

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			identity := Identity{}
			if v, ok := claims["user_id"].(string); ok {
				identity.UserID = v
			}
			if v, ok := claims["email"].(string); ok {
				identity.Email = v
			}
			if v, ok := claims["employee_id"].(string); ok && v != "" {
				identity.EmployeeID = &v
			}
			if v, ok := claims["role"].(string); ok {
				identity.Role = user.Role(v)
			}
			if identity.UserID == "" || !identity.Role.Valid() {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
