package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
	"github.com/Uvais-khan078/village360/pkg/report/controller"
	"github.com/Uvais-khan078/village360/pkg/storage"
)

type ReportCtrl struct{ store storage.ReportStore }

func New(store storage.ReportStore) controller.ReportController { return &ReportCtrl{store} }

type reportReq struct {
	ProjectID  *string             `json:"projectId"`
	ReportType entities.ReportType `json:"reportType" validate:"required,oneof=progress completion gap_analysis monthly" label:"Report type"`
	Title      string              `json:"title" validate:"notblank"`
	Content    string              `json:"content"`
	FileURL    string              `json:"fileUrl"`
}

func (h *ReportCtrl) List(c echo.Context) error {
	if pid := c.QueryParam("projectId"); pid != "" {
		return h.byProject(c, pid)
	}
	out, err := h.store.ListReports(c.Request().Context())
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportCtrl) ListByProject(c echo.Context) error { return h.byProject(c, c.Param("id")) }

func (h *ReportCtrl) byProject(c echo.Context, projectID string) error {
	out, err := h.store.ListReportsByProject(c.Request().Context(), projectID)
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportCtrl) Create(c echo.Context) error {
	var req reportReq
	if err := httpapi.BindValid(c, &req); err != nil {
		return err
	}
	r, err := h.store.CreateReport(c.Request().Context(), storage.NewReport{
		ProjectID:  req.ProjectID,
		ReportType: req.ReportType,
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		FileURL:    req.FileURL,
		CreatedBy:  httpapi.CurrentUser(c).ID,
	})
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusCreated, r)
}
