package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Uvais-khan078/village360/pkg/amenity/controller"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
	"github.com/Uvais-khan078/village360/pkg/storage"
)

type AmenityCtrl struct{ store storage.AmenityStore }

func New(store storage.AmenityStore) controller.AmenityController { return &AmenityCtrl{store} }

type amenityReq struct {
	VillageID   string `json:"villageId" validate:"required" label:"Village"`
	AmenityType string `json:"amenityType" validate:"required,oneof=education water healthcare electricity roads" label:"Amenity type"`
	Available   *int   `json:"available" validate:"required,gte=0"`
	Required    *int   `json:"required" validate:"required,gte=0"`
}

func (h *AmenityCtrl) ListByVillage(c echo.Context) error {
	out, err := h.store.ListAmenitiesByVillage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AmenityCtrl) Update(c echo.Context) error {
	var req amenityReq
	if err := httpapi.BindValid(c, &req); err != nil {
		return err
	}
	a, err := h.store.UpdateAmenity(c.Request().Context(), storage.AmenityUpsert{
		VillageID:   req.VillageID,
		AmenityType: req.AmenityType,
		Available:   *req.Available,
		Required:    *req.Required,
	})
	if err != nil {
		return httpapi.Fail(err)
	}
	return c.JSON(http.StatusOK, a)
}
