package controller

import "github.com/labstack/echo/v4"

type AmenityController interface {
	ListByVillage(c echo.Context) error
	Update(c echo.Context) error
}
