package controller

import "github.com/labstack/echo/v4"

type AdminController interface {
	ListUsers(c echo.Context) error
	CreateUser(c echo.Context) error
	DeleteUser(c echo.Context) error
}
