package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediatrack/media-billboard/internal/utils"
)

// Health responds to liveness probes.
func Health(c echo.Context) error {
	return utils.Respond(c, http.StatusOK, true, "ok", nil)
}
