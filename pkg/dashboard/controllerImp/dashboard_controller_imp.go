package controllerImp

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/dashboard/controller"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
)

type statsSource interface {
	DashboardStats(ctx context.Context) (entities.DashboardStats, error)
}

type DashboardCtrl struct{ src statsSource }

func New(src statsSource) controller.DashboardController { return &DashboardCtrl{src} }

func (h *DashboardCtrl) Stats(c echo.Context) error {
	st, err := h.src.DashboardStats(c.Request().Context())
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, st)
}
