package middleware

import (
	"net/http"

	"github.com/devxankit/appzeto-payroll/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly restricts money-affecting routes to admin and HR roles.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		role, _ := claims["role"].(string)
		if role != "admin" && role != "hr" {
			response.Forbidden(w, "Admin or HR role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
