package controller

import "github.com/labstack/echo/v4"

type DashboardController interface {
	Stats(c echo.Context) error
}
