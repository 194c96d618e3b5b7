package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mediatrack/media-billboard/internal/middleware"
	"github.com/mediatrack/media-billboard/internal/repository"
	"github.com/mediatrack/media-billboard/internal/service"
	"github.com/mediatrack/media-billboard/internal/utils"
)

// TicketHandler exposes the purchase flow and the caller's purchase
// history. All routes here require an authenticated identity.
type TicketHandler struct {
	Tickets *service.TicketService
	Repo    *repository.TicketRepo
}

func NewTicketHandler(tickets *service.TicketService, repo *repository.TicketRepo) *TicketHandler {
	if tickets == nil || repo == nil {
		panic("nil dependency passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Repo: repo}
}

type purchaseReq struct {
	MediaID  uint64 `json:"media_id"`
	VenueID  uint64 `json:"venue_id"`
	Quantity int    `json:"quantity"`
}

// Purchase handles POST /v1/media/tickets/purchase. The inventory
// decrement and ticket insert run in one transaction inside the
// service; a sold-out venue surfaces as 409.
func (h *TicketHandler) Purchase(c echo.Context) error {
	id := middleware.Current(c)
	var req purchaseReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.MediaID == 0 || req.VenueID == 0 {
		return utils.Fail(c, http.StatusBadRequest, "media_id and venue_id are required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	ticket, err := h.Tickets.Purchase(ctx, id.UserID, req.MediaID, req.VenueID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			return utils.Fail(c, http.StatusBadRequest, "Quantity must be at least 1")
		case errors.Is(err, repository.ErrMediaNotFound):
			return utils.Fail(c, http.StatusNotFound, "Media not found")
		case errors.Is(err, repository.ErrVenueNotFound):
			return utils.Fail(c, http.StatusNotFound, "Venue not found")
		case errors.Is(err, repository.ErrVenueNotAttached):
			return utils.Fail(c, http.StatusBadRequest, "Venue is not attached to this media")
		case errors.Is(err, repository.ErrVenueUnavailable):
			return utils.Fail(c, http.StatusConflict, "Venue is not available")
		case errors.Is(err, repository.ErrInsufficientInventory):
			return utils.Fail(c, http.StatusConflict, "Not enough seats or stock available")
		default:
			return utils.FailWith(c, http.StatusInternalServerError, "Error purchasing ticket", err.Error())
		}
	}
	return utils.Respond(c, http.StatusCreated, true, "Ticket purchased successfully", ticket)
}

// MyTickets handles GET /v1/media/tickets, listing the caller's
// purchases newest first.
func (h *TicketHandler) MyTickets(c echo.Context) error {
	id := middleware.Current(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Repo.ListByUser(ctx, id.UserID)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error retrieving tickets", err.Error())
	}
	return utils.OK(c, "Tickets retrieved successfully", tickets)
}
