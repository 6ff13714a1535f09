package controller

import "github.com/labstack/echo/v4"

type ReportController interface {
	List(c echo.Context) error
	ListByProject(c echo.Context) error
	Create(c echo.Context) error
}
