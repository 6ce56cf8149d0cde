package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"fairTune/domain"
	"fairTune/pkg/metrics"
)

type (
	RecommendHandler struct {
		validate         *validator.Validate
		recommendService RecommenderService
	}

	RecommenderService interface {
		Recommend(ctx context.Context, listenerID uint, station string, limit int, reqCtx map[string]any) (domain.Recommendation, error)
		DebugRecommend(ctx context.Context, listenerID uint, station string, limit int, reqCtx map[string]any) ([]domain.DebugTrack, error)
		LogFeedback(ctx context.Context, event domain.FeedbackEvent) error
		ExplorationRate(ctx context.Context, listenerID uint, station string) (float64, error)
	}

	RecommendQuery struct {
		Station  string `query:"station" validate:"required"`
		N        int    `query:"n"`
		Mood     string `query:"mood"`
		Activity string `query:"activity"`
		Platform string `query:"platform"`
	}

	FeedbackRequest struct {
		Station      string         `json:"station" validate:"required"`
		TrackID      string         `json:"track_id" validate:"required"`
		FeedbackType string         `json:"feedback_type" validate:"required,oneof=play like save skip dislike"`
		SessionID    string         `json:"session_id"`
		Rating       *float64       `json:"rating" validate:"omitempty,gte=0,lte=1"`
		Exploration  bool           `json:"is_exploration"`
		Context      map[string]any `json:"context"`
	}
)

func NewRecommendHandler(svc RecommenderService) *RecommendHandler {
	return &RecommendHandler{
		validate:         validator.New(),
		recommendService: svc,
	}
}

func (q RecommendQuery) requestContext() map[string]any {
	reqCtx := map[string]any{}
	if q.Mood != "" {
		reqCtx["mood"] = q.Mood
	}
	if q.Activity != "" {
		reqCtx["activity"] = q.Activity
	}
	if q.Platform != "" {
		reqCtx["platform"] = q.Platform
	}
	if len(reqCtx) == 0 {
		return nil
	}
	return reqCtx
}

func (h *RecommendHandler) Recommend(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()
	metrics.RecommendRequests.Inc()

	lidVal := c.Get("listener_id")
	listenerID, ok := lidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	rec, err := h.recommendService.Recommend(c.Request().Context(), listenerID, q.Station, q.N, q.requestContext())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rec))
}

func (h *RecommendHandler) Feedback(c echo.Context) error {
	lidVal := c.Get("listener_id")
	listenerID, ok := lidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	// absent rating means the station profile's implied rating applies
	rating := -1.0
	if req.Rating != nil {
		rating = *req.Rating
	}

	event := domain.FeedbackEvent{
		ListenerID:    listenerID,
		Station:       req.Station,
		TrackID:       req.TrackID,
		FeedbackType:  req.FeedbackType,
		SessionID:     req.SessionID,
		Rating:        rating,
		IsExploration: req.Exploration,
		Context:       req.Context,
	}

	if err := h.recommendService.LogFeedback(c.Request().Context(), event); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("feedback recorded"))
}

// GET /api/v1/recommendations/debug?station=discover&n=10
func (h *RecommendHandler) DebugRecommend(c echo.Context) error {
	lidVal := c.Get("listener_id")
	listenerID, ok := lidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	rows, err := h.recommendService.DebugRecommend(c.Request().Context(), listenerID, q.Station, q.N, q.requestContext())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}

// GET /api/v1/recommendations/exploration-rate?station=discover
func (h *RecommendHandler) ExplorationRate(c echo.Context) error {
	lidVal := c.Get("listener_id")
	listenerID, ok := lidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	station := c.QueryParam("station")
	if station == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "station is required"})
	}

	rate, err := h.recommendService.ExplorationRate(c.Request().Context(), listenerID, station)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
		"station":          station,
		"exploration_rate": rate,
	}))
}
