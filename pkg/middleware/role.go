package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
)

// RequireRole must run after Authenticate.
func RequireRole(roles ...entities.Role) echo.MiddlewareFunc {
	allowed := make(map[entities.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := httpapi.CurrentUser(c)
			if u == nil || !allowed[u.Role] {
				return httpapi.Error(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}
