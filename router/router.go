package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Uvais-khan078/village360/entities"
	adminCtrl "github.com/Uvais-khan078/village360/pkg/admin/controller"
	adminCtrlImp "github.com/Uvais-khan078/village360/pkg/admin/controllerImp"
	amenityCtrl "github.com/Uvais-khan078/village360/pkg/amenity/controller"
	amenityCtrlImp "github.com/Uvais-khan078/village360/pkg/amenity/controllerImp"
	authCtrl "github.com/Uvais-khan078/village360/pkg/auth/controller"
	authCtrlImp "github.com/Uvais-khan078/village360/pkg/auth/controllerImp"
	authSvc "github.com/Uvais-khan078/village360/pkg/auth/service"
	authSvcImp "github.com/Uvais-khan078/village360/pkg/auth/serviceImp"
	dashCtrl "github.com/Uvais-khan078/village360/pkg/dashboard/controller"
	dashCtrlImp "github.com/Uvais-khan078/village360/pkg/dashboard/controllerImp"
	gapCtrl "github.com/Uvais-khan078/village360/pkg/gap/controller"
	gapCtrlImp "github.com/Uvais-khan078/village360/pkg/gap/controllerImp"
	gapSvcImp "github.com/Uvais-khan078/village360/pkg/gap/serviceImp"
	healthCtrl "github.com/Uvais-khan078/village360/pkg/health/controller"
	healthCtrlImp "github.com/Uvais-khan078/village360/pkg/health/controllerImp"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
	"github.com/Uvais-khan078/village360/pkg/middleware"
	projectCtrl "github.com/Uvais-khan078/village360/pkg/project/controller"
	projectCtrlImp "github.com/Uvais-khan078/village360/pkg/project/controllerImp"
	reportCtrl "github.com/Uvais-khan078/village360/pkg/report/controller"
	reportCtrlImp "github.com/Uvais-khan078/village360/pkg/report/controllerImp"
	"github.com/Uvais-khan078/village360/pkg/storage"
	villageCtrl "github.com/Uvais-khan078/village360/pkg/village/controller"
	villageCtrlImp "github.com/Uvais-khan078/village360/pkg/village/controllerImp"
)

type Controllers struct {
	Auth      authCtrl.AuthController
	Admin     adminCtrl.AdminController
	Dashboard dashCtrl.DashboardController
	Village   villageCtrl.VillageController
	Project   projectCtrl.ProjectController
	Report    reportCtrl.ReportController
	Amenity   amenityCtrl.AmenityController
	Gap       gapCtrl.GapController
	Health    healthCtrl.HealthController
}

type Options struct {
	Tokens    authSvc.TokenIssuer
	Users     storage.UserStore
	Log       *zap.Logger
	ClientURL string
}

// Setup builds every controller on top of one store and returns a ready echo instance.
func Setup(st storage.Storage, tokens authSvc.TokenIssuer, log *zap.Logger, clientURL string) *echo.Echo {
	auth := authSvcImp.New(st, tokens)
	ctrls := Controllers{
		Auth:      authCtrlImp.NewAuthController(auth),
		Admin:     adminCtrlImp.New(st, auth),
		Dashboard: dashCtrlImp.New(st),
		Village:   villageCtrlImp.New(st),
		Project:   projectCtrlImp.New(st),
		Report:    reportCtrlImp.New(st),
		Amenity:   amenityCtrlImp.New(st),
		Gap:       gapCtrlImp.New(gapSvcImp.New(st)),
		Health:    healthCtrlImp.NewHealthCtrl(st, log),
	}
	return New(echo.New(), Options{Tokens: tokens, Users: st, Log: log, ClientURL: clientURL}, ctrls)
}

func New(e *echo.Echo, o Options, c Controllers) *echo.Echo {
	e.HideBanner = true
	e.Binder = httpapi.StrictBinder{}
	e.Validator = httpapi.Validator{}
	e.HTTPErrorHandler = httpapi.ErrorHandler(o.Log)

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(httpapi.RequestLogger(o.Log))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     []string{o.ClientURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	}))

	api := e.Group("/api")
	api.GET("/health", c.Health.Health)
	api.GET("/health/db", c.Health.DB)
	api.POST("/auth/register", c.Auth.Register)
	api.POST("/auth/login", c.Auth.Login)

	authed := api.Group("", middleware.Authenticate(o.Tokens, o.Users))
	admin := middleware.RequireRole(entities.RoleAdmin)
	planners := middleware.RequireRole(entities.RoleAdmin, entities.RoleDistrictOfficer)
	officers := middleware.RequireRole(entities.Officers...)

	authed.GET("/auth/me", c.Auth.Me)
	authed.GET("/dashboard/stats", c.Dashboard.Stats)

	authed.GET("/admin/users", c.Admin.ListUsers, admin)
	authed.POST("/admin/users", c.Admin.CreateUser, admin)
	authed.DELETE("/admin/users/:id", c.Admin.DeleteUser, admin)

	authed.GET("/villages", c.Village.List)
	authed.GET("/villages/:id", c.Village.Get)
	authed.POST("/villages", c.Village.Create, planners)
	authed.PUT("/villages/:id", c.Village.Update, planners)
	authed.GET("/villages/:id/amenities", c.Amenity.ListByVillage)
	authed.GET("/villages/:id/projects", c.Project.ListByVillage)

	authed.GET("/projects", c.Project.List)
	authed.GET("/projects/:id", c.Project.Get)
	authed.POST("/projects", c.Project.Create, officers)
	authed.PUT("/projects/:id", c.Project.Update, officers)
	authed.DELETE("/projects/:id", c.Project.Delete, planners)
	authed.GET("/projects/:id/reports", c.Report.ListByProject)

	authed.GET("/reports", c.Report.List)
	authed.POST("/reports", c.Report.Create, officers)

	authed.PUT("/amenities", c.Amenity.Update, officers)

	authed.GET("/gap-analysis", c.Gap.Analyze, officers)
	authed.GET("/gap-analysis/export", c.Gap.Export, officers)
	return e
}
