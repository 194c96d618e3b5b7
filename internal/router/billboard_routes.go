package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mediatrack/media-billboard/internal/handler"
)

// RegisterBillboard registers the weekly ranking endpoints under
// /v1/media/billboard. Rankings are public; no identity is needed
// because entries carry no category-restricted detail beyond the title.
func RegisterBillboard(e *echo.Echo, h *handler.BillboardHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/media/billboard")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/current", h.Current)
	g.GET("/movies", h.Movies)
	g.GET("/books", h.Books)
	g.GET("/search", h.Search)
}
