package controller

import "github.com/labstack/echo/v4"

type GapController interface {
	Analyze(c echo.Context) error
	Export(c echo.Context) error
}
