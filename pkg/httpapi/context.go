package httpapi

import (
	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/entities"
)

const userKey = "user"

func SetUser(c echo.Context, u *entities.User) { c.Set(userKey, u) }

// CurrentUser is the verified user attached by the auth middleware, or nil.
func CurrentUser(c echo.Context) *entities.User {
	u, _ := c.Get(userKey).(*entities.User)
	return u
}
