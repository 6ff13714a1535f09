package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
	"github.com/Uvais-khan078/village360/pkg/storage"
	"github.com/Uvais-khan078/village360/pkg/village/controller"
)

type VillageCtrl struct{ store storage.VillageStore }

func New(store storage.VillageStore) controller.VillageController { return &VillageCtrl{store} }

type createReq struct {
	Name       string            `json:"name" validate:"notblank"`
	District   string            `json:"district" validate:"notblank"`
	Block      string            `json:"block" validate:"notblank"`
	Latitude   *entities.Decimal `json:"latitude" validate:"required,gte=-90,lte=90" msg:"Latitude must be between -90 and 90"`
	Longitude  *entities.Decimal `json:"longitude" validate:"required,gte=-180,lte=180" msg:"Longitude must be between -180 and 180"`
	Population int               `json:"population" validate:"gte=0"`
}

type updateReq struct {
	Name       *string           `json:"name" validate:"omitnil,notblank"`
	District   *string           `json:"district" validate:"omitnil,notblank"`
	Block      *string           `json:"block" validate:"omitnil,notblank"`
	Latitude   *entities.Decimal `json:"latitude" validate:"omitnil,gte=-90,lte=90" msg:"Latitude must be between -90 and 90"`
	Longitude  *entities.Decimal `json:"longitude" validate:"omitnil,gte=-180,lte=180" msg:"Longitude must be between -180 and 180"`
	Population *int              `json:"population" validate:"omitnil,gte=0"`
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func (h *VillageCtrl) List(c echo.Context) error {
	out, err := h.store.ListVillages(c.Request().Context())
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VillageCtrl) Get(c echo.Context) error {
	v, err := h.store.GetVillageWithAmenities(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpapi.NotFoundAs(err, "Village not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *VillageCtrl) Create(c echo.Context) error {
	var req createReq
	if err := httpapi.BindValid(c, &req); err != nil {
		return err
	}
	v, err := h.store.CreateVillage(c.Request().Context(), storage.NewVillage{
		Name:       strings.TrimSpace(req.Name),
		District:   strings.TrimSpace(req.District),
		Block:      strings.TrimSpace(req.Block),
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		Population: req.Population,
	})
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *VillageCtrl) Update(c echo.Context) error {
	var req updateReq
	if err := httpapi.BindValid(c, &req); err != nil {
		return err
	}
	v, err := h.store.UpdateVillage(c.Request().Context(), c.Param("id"), storage.VillagePatch{
		Name:       trimmed(req.Name),
		District:   trimmed(req.District),
		Block:      trimmed(req.Block),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Population: req.Population,
	})
	if err != nil {
		return httpapi.NotFoundAs(err, "Village not found")
	}
	return c.JSON(http.StatusOK, v)
}
