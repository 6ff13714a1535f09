package controller

import "github.com/labstack/echo/v4"

type HealthController interface {
	Health(c echo.Context) error
	DB(c echo.Context) error
}
