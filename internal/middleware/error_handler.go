package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fairTune/pkg/logger"

	jsonres "fairTune/pkg/response"
)

// ErrorHandler is the echo HTTPErrorHandler: uncaught errors become the
// middleware-layer envelope instead of echo's default body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled error", "error", err, "path", c.Path())
	}

	if writeErr := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); writeErr != nil {
		logger.Error("failed to write error response", "error", writeErr)
	}
}
