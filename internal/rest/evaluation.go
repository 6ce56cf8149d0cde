package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	EvaluationHandler struct {
		validate          *validator.Validate
		evaluationService EvaluationService
	}

	EvaluationService interface {
		EvaluationSummary(ctx context.Context, listenerID uint, station, window string) (map[string]float64, error)
		SaveEvaluation(ctx context.Context, listenerID uint, station string) error
		LoadEvaluation(ctx context.Context, listenerID uint, station string) error
	}

	SummaryQuery struct {
		Station string `query:"station" validate:"required"`
		Window  string `query:"window" validate:"omitempty,oneof=all week month"`
	}

	ArchiveRequest struct {
		Station string `json:"station" validate:"required"`
	}
)

func NewEvaluationHandler(svc EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{
		validate:          validator.New(),
		evaluationService: svc,
	}
}

// GET /api/v1/evaluation/summary?station=discover&window=week
func (h *EvaluationHandler) Summary(c echo.Context) error {
	lidVal := c.Get("listener_id")
	listenerID, ok := lidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q SummaryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.Window == "" {
		q.Window = "all"
	}

	summary, err := h.evaluationService.EvaluationSummary(c.Request().Context(), listenerID, q.Station, q.Window)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
		"station": q.Station,
		"window":  q.Window,
		"summary": summary,
	}))
}

// POST /api/v1/evaluation/archive/save
func (h *EvaluationHandler) SaveArchive(c echo.Context) error {
	lidVal := c.Get("listener_id")
	listenerID, ok := lidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ArchiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.evaluationService.SaveEvaluation(c.Request().Context(), listenerID, req.Station); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("evaluation archived"))
}

// POST /api/v1/evaluation/archive/load
func (h *EvaluationHandler) LoadArchive(c echo.Context) error {
	lidVal := c.Get("listener_id")
	listenerID, ok := lidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ArchiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.evaluationService.LoadEvaluation(c.Request().Context(), listenerID, req.Station); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("evaluation restored"))
}
