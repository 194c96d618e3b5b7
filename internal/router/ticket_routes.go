package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mediatrack/media-billboard/internal/handler"
	"github.com/mediatrack/media-billboard/internal/middleware"
)

// RegisterTickets registers the purchase endpoints under
// /v1/media/tickets. Both require an authenticated identity: purchases
// are attributed to the caller and history is scoped to them.
func RegisterTickets(e *echo.Echo, h *handler.TicketHandler, jwtSecret string) {
	g := e.Group("/v1/media/tickets",
		middleware.ResolveIdentity(jwtSecret),
		middleware.RequireAuth(),
	)
	g.POST("/purchase", h.Purchase)
	g.GET("", h.MyTickets)
}
