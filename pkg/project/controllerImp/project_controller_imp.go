package controllerImp

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
	"github.com/Uvais-khan078/village360/pkg/project/controller"
	"github.com/Uvais-khan078/village360/pkg/storage"
)

type ProjectCtrl struct{ store storage.ProjectStore }

func New(store storage.ProjectStore) controller.ProjectController { return &ProjectCtrl{store} }

// dates accept a plain day or a full timestamp
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, *s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, entities.Invalid("%s must be a date (YYYY-MM-DD)", field)
}

type createReq struct {
	VillageID   string                 `json:"villageId" validate:"notblank" label:"Village"`
	Title       string                 `json:"title" validate:"notblank"`
	Description string                 `json:"description"`
	Status      entities.ProjectStatus `json:"status" validate:"omitempty,oneof=planning ongoing completed delayed cancelled"`
	StartDate   *string                `json:"startDate"`
	EndDate     *string                `json:"endDate"`
	Budget      *entities.Decimal      `json:"budget" validate:"omitnil,gte=0"`
	Progress    int                    `json:"progress"`

	start, end *time.Time
}

func (r *createReq) Validate() error {
	var err error
	r.start, r.end, err = dates(r.StartDate, r.EndDate)
	return err
}

type updateReq struct {
	VillageID   *string                 `json:"villageId" validate:"omitnil,notblank" label:"Village"`
	Title       *string                 `json:"title" validate:"omitnil,notblank"`
	Description *string                 `json:"description"`
	Status      *entities.ProjectStatus `json:"status" validate:"omitnil,oneof=planning ongoing completed delayed cancelled"`
	StartDate   *string                 `json:"startDate"`
	EndDate     *string                 `json:"endDate"`
	Budget      *entities.Decimal       `json:"budget" validate:"omitnil,gte=0"`
	Progress    *int                    `json:"progress"`

	start, end *time.Time
}

// Validate only compares dates sent together; the store checks the result
// against the dates already saved.
func (r *updateReq) Validate() error {
	var err error
	r.start, r.end, err = dates(r.StartDate, r.EndDate)
	return err
}

func dates(start, end *string) (*time.Time, *time.Time, error) {
	s, err := parseDate("startDate", start)
	if err != nil {
		return nil, nil, err
	}
	e, err := parseDate("endDate", end)
	if err != nil {
		return nil, nil, err
	}
	return s, e, storage.CheckDates(s, e)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func (h *ProjectCtrl) List(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		out []entities.ProjectWithDetails
		err error
	)
	if mine, _ := strconv.ParseBool(c.QueryParam("mine")); mine {
		out, err = h.store.ListProjectsByUser(ctx, httpapi.CurrentUser(c).ID)
	} else {
		out, err = h.store.ListProjects(ctx)
	}
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProjectCtrl) ListByVillage(c echo.Context) error {
	out, err := h.store.ListProjectsByVillage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProjectCtrl) Get(c echo.Context) error {
	p, err := h.store.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpapi.NotFoundAs(err, "Project not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectCtrl) Create(c echo.Context) error {
	var req createReq
	if err := httpapi.BindValid(c, &req); err != nil {
		return err
	}
	p, err := h.store.CreateProject(c.Request().Context(), storage.NewProject{
		VillageID:   req.VillageID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.start,
		EndDate:     req.end,
		Budget:      deref(req.Budget),
		Progress:    req.Progress,
		CreatedBy:   httpapi.CurrentUser(c).ID,
	})
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProjectCtrl) Update(c echo.Context) error {
	var req updateReq
	if err := httpapi.BindValid(c, &req); err != nil {
		return err
	}
	p, err := h.store.UpdateProject(c.Request().Context(), c.Param("id"), storage.ProjectPatch{
		VillageID:   req.VillageID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.start,
		EndDate:     req.end,
		Budget:      req.Budget,
		Progress:    req.Progress,
	})
	if err != nil {
		return httpapi.NotFoundAs(err, "Project not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectCtrl) Delete(c echo.Context) error {
	if err := h.store.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return httpapi.NotFoundAs(err, "Project not found")
	}
	return c.NoContent(http.StatusNoContent)
}
