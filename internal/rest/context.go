package rest

import (
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"fairTune/domain"
)

// ContextHandler serves the static suggestion lists clients tag their
// sessions with.
type ContextHandler struct{}

func NewContextHandler() *ContextHandler {
	return &ContextHandler{}
}

// GET /api/v1/context/moods
func (h *ContextHandler) Moods(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.MoodSuggestions()))
}

// GET /api/v1/context/activities
func (h *ContextHandler) Activities(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.ActivitySuggestions()))
}
