package rest

import (
	"context"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"fairTune/business/catalog"
)

type CatalogService interface {
	GetCandidates(ctx context.Context, station string, limit int) ([]catalog.Entry, error)
}

type CatalogHandler struct {
	validate       *validator.Validate
	catalogService CatalogService
}

func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{
		validate:       validator.New(),
		catalogService: service,
	}
}

type CandidatesQuery struct {
	Station string `query:"station" validate:"required"`
	N       int    `query:"n"`
}

// GET /api/v1/candidates?station=discover&n=20
func (h *CatalogHandler) GetCandidates(c echo.Context) error {
	var q CandidatesQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.N <= 0 {
		q.N = 20
	}

	entries, err := h.catalogService.GetCandidates(c.Request().Context(), q.Station, q.N)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(entries))
}
