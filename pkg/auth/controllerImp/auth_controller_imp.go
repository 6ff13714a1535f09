package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/pkg/auth/controller"
	"github.com/Uvais-khan078/village360/pkg/auth/service"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
)

type authCtrl struct{ svc service.AuthService }

func NewAuthController(svc service.AuthService) controller.AuthController { return &authCtrl{svc} }

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register binds without the validator: the service validates after it has
// discarded any requested role.
func (h *authCtrl) Register(c echo.Context) error {
	var in service.RegisterInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	sess, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *authCtrl) Login(c echo.Context) error {
	var req loginReq
	if err := httpapi.BindValid(c, &req); err != nil {
		return err
	}
	sess, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return httpapi.Error(http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *authCtrl) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, httpapi.CurrentUser(c))
}
