package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/pkg/admin/controller"
	auth "github.com/Uvais-khan078/village360/pkg/auth/service"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
	"github.com/Uvais-khan078/village360/pkg/storage"
)

type AdminCtrl struct {
	users storage.UserStore
	auth  auth.AuthService
}

func New(users storage.UserStore, svc auth.AuthService) controller.AdminController {
	return &AdminCtrl{users: users, auth: svc}
}

func (h *AdminCtrl) ListUsers(c echo.Context) error {
	out, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

// CreateUser lets an admin provision officers; unlike self-registration the requested role is kept.
func (h *AdminCtrl) CreateUser(c echo.Context) error {
	var in auth.RegisterInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	if in.ConfirmPassword == "" {
		in.ConfirmPassword = in.Password
	}
	u, err := h.auth.CreateUser(c.Request().Context(), in)
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *AdminCtrl) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if me := httpapi.CurrentUser(c); me != nil && me.ID == id {
		return httpapi.Error(http.StatusBadRequest, "You cannot delete your own account")
	}
	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return httpapi.Error(http.StatusBadRequest, "User still owns projects or reports")
		}
		return httpapi.NotFoundAs(err, "User not found")
	}
	return c.NoContent(http.StatusNoContent)
}
