package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mediatrack/media-billboard/internal/billboard"
	"github.com/mediatrack/media-billboard/internal/model"
	"github.com/mediatrack/media-billboard/internal/utils"
)

// BillboardHandler serves the weekly rankings. Current-week reads seed
// the partition from existing media when it is empty; historical reads
// never seed.
type BillboardHandler struct {
	Board *billboard.Engine
}

func NewBillboardHandler(board *billboard.Engine) *BillboardHandler {
	if board == nil {
		panic("nil dependency passed to NewBillboardHandler")
	}
	return &BillboardHandler{Board: board}
}

// Current handles GET /v1/media/billboard/current. It returns both
// partitions for the current week side by side.
func (h *BillboardHandler) Current(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Board.GetCurrent(ctx, model.MediaTypeMovie)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error retrieving billboard", err.Error())
	}
	books, err := h.Board.GetCurrent(ctx, model.MediaTypeBook)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error retrieving billboard", err.Error())
	}
	return utils.OK(c, "Billboard retrieved successfully", echo.Map{
		"movies": movies,
		"books":  books,
	})
}

// Movies handles GET /v1/media/billboard/movies.
func (h *BillboardHandler) Movies(c echo.Context) error {
	return h.current(c, model.MediaTypeMovie, "Movie billboard retrieved successfully")
}

// Books handles GET /v1/media/billboard/books.
func (h *BillboardHandler) Books(c echo.Context) error {
	return h.current(c, model.MediaTypeBook, "Book billboard retrieved successfully")
}

func (h *BillboardHandler) current(c echo.Context, mediaType model.MediaType, msg string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Board.GetCurrent(ctx, mediaType)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error retrieving billboard", err.Error())
	}
	return utils.OK(c, msg, entries)
}

// Search handles GET /v1/media/billboard/search?week=&year=&media_type=.
// Week must be 1..52; media_type is optional and an absent one spans
// both partitions. An empty partition returns an empty list, not an
// error.
func (h *BillboardHandler) Search(c echo.Context) error {
	week, err := strconv.Atoi(c.QueryParam("week"))
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Query parameter 'week' is required")
	}
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Query parameter 'year' is required")
	}
	raw := c.QueryParam("media_type")
	if raw == "" {
		raw = c.QueryParam("mediaType")
	}
	mediaType := model.MediaType(raw)
	if mediaType != "" && !mediaType.IsValid() {
		return utils.Fail(c, http.StatusBadRequest, "Type must be either 'movie' or 'book'")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Board.GetByWeekYear(ctx, week, year, mediaType)
	if err != nil {
		if errors.Is(err, billboard.ErrInvalidWeek) {
			return utils.Fail(c, http.StatusBadRequest, "Week must be between 1 and 52")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Error retrieving billboard", err.Error())
	}
	return utils.OK(c, "Billboard retrieved successfully", entries)
}
