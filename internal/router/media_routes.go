package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mediatrack/media-billboard/internal/handler"
	"github.com/mediatrack/media-billboard/internal/middleware"
)

// RegisterMedia registers the media CRUD surface under /v1/media.
// Reads are open to guests (ResolveIdentity falls back to a
// kids-restricted identity when no token is present); writes require a
// logged-in user. The optional cache middleware is applied to list and
// detail reads only.
func RegisterMedia(e *echo.Echo, h *handler.MediaHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	read := e.Group("/v1/media", middleware.ResolveIdentity(jwtSecret))
	if cache != nil {
		read.Use(cache)
	}
	read.GET("", h.List)
	read.GET("/search", h.Search)
	read.GET("/filter/:type", h.Filter)
	read.GET("/:id", h.Get)

	write := e.Group("/v1/media",
		middleware.ResolveIdentity(jwtSecret),
		middleware.RequireAuth(),
	)
	write.POST("", h.Create)
	write.PUT("/:id", h.Update)
	write.DELETE("/:id", h.Delete)
	write.POST("/:id/venues", h.AddVenue)

	// View counting is open to guests but still category-gated inside the
	// handler. Registered outside the cached group so repeat views are
	// never swallowed by the response cache.
	e.PUT("/v1/media/:id/view", h.RecordView, middleware.ResolveIdentity(jwtSecret))
}
