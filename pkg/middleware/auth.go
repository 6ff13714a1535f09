package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/pkg/auth/service"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
	"github.com/Uvais-khan078/village360/pkg/storage"
)

// Authenticate reads a Bearer token, verifies it and attaches the user it
// names. A missing token is 401, a bad or expired one 403.
func Authenticate(tokens service.TokenIssuer, users storage.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return httpapi.Error(http.StatusUnauthorized, "Access token required")
			}
			uid, err := tokens.Verify(raw)
			if err != nil {
				return httpapi.Error(http.StatusForbidden, "Invalid token")
			}
			u, err := users.GetUser(c.Request().Context(), uid)
			if errors.Is(err, storage.ErrNotFound) {
				return httpapi.Error(http.StatusUnauthorized, "Invalid token")
			}
			if err != nil {
				return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Authentication lookup failed", Internal: err}
			}
			httpapi.SetUser(c, u)
			return next(c)
		}
	}
}

func bearer(h string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
