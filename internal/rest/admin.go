package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"fairTune/business/catalog"
	"fairTune/business/recommender"
	"fairTune/domain"
)

type CatalogAdminService interface {
	ReplaceStation(ctx context.Context, station string, entries []catalog.Entry) (int, error)
}

type RerankAdminHandler struct {
	profileRepo    recommender.ProfileRepository
	catalogService CatalogAdminService
}

func NewRerankAdminHandler(
	profileRepo recommender.ProfileRepository,
	catalogService CatalogAdminService,
) *RerankAdminHandler {
	return &RerankAdminHandler{
		profileRepo:    profileRepo,
		catalogService: catalogService,
	}
}

// GET /api/v1/admin/rerank/config?station=discover
func (h *RerankAdminHandler) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()
	station := c.QueryParam("station")

	if station == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "station is required",
		})
	}

	profile, ok, err := h.profileRepo.GetProfile(ctx, station)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "profile not found",
		})
	}

	return c.JSON(http.StatusOK, profile)
}

// PUT /api/v1/admin/rerank/config
// body: RerankProfile JSON
func (h *RerankAdminHandler) UpsertConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body domain.RerankProfile
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.Station == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "station is required",
		})
	}

	if err := h.profileRepo.UpsertProfile(ctx, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}

// PUT /api/v1/admin/candidates?station=discover
// body: []catalog.Entry JSON
func (h *RerankAdminHandler) ReplaceCandidates(c echo.Context) error {
	ctx := c.Request().Context()
	station := c.QueryParam("station")

	if station == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "station is required",
		})
	}

	var entries []catalog.Entry
	if err := c.Bind(&entries); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}

	count, err := h.catalogService.ReplaceStation(ctx, station, entries)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"station": station,
		"count":   count,
	})
}
