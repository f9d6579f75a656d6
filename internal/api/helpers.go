package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": map[string]any{
			"type":    errType,
			"message": msg,
		},
	})
}

// RequestID tags every response with an id for log correlation,
// honouring one supplied by the client.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}
