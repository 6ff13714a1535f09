package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/pkg/gap/controller"
	"github.com/Uvais-khan078/village360/pkg/gap/service"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type GapCtrl struct{ svc service.GapService }

func New(svc service.GapService) controller.GapController { return &GapCtrl{svc} }

func filter(c echo.Context) service.Filter {
	return service.Filter{District: c.QueryParam("district"), AmenityType: c.QueryParam("amenityType")}
}

func (h *GapCtrl) Analyze(c echo.Context) error {
	a, err := h.svc.Analyze(c.Request().Context(), filter(c))
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *GapCtrl) Export(c echo.Context) error {
	data, err := h.svc.Export(c.Request().Context(), filter(c))
	if err != nil {
		return httpapi.Fail(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="gap-analysis.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, data)
}
