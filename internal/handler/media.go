package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"strings"  // string trimming for form fields
	"time"     // timeouts and release date parsing

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/mediatrack/media-billboard/internal/access"
	"github.com/mediatrack/media-billboard/internal/billboard"
	"github.com/mediatrack/media-billboard/internal/config"
	"github.com/mediatrack/media-billboard/internal/middleware"
	"github.com/mediatrack/media-billboard/internal/model"
	"github.com/mediatrack/media-billboard/internal/repository"
	"github.com/mediatrack/media-billboard/internal/upload"
	"github.com/mediatrack/media-billboard/internal/utils"
)

// MediaHandler implements the media CRUD surface. Every read restricts
// results to the caller's allowed categories and every write is gated
// by the access policy before it reaches the repositories.
type MediaHandler struct {
	Cfg    config.Config
	Media  *repository.MediaRepo
	Venues *repository.VenueRepo
	Board  *billboard.Engine
}

func NewMediaHandler(cfg config.Config, media *repository.MediaRepo, venues *repository.VenueRepo, board *billboard.Engine) *MediaHandler {
	if media == nil || venues == nil || board == nil {
		panic("nil dependency passed to NewMediaHandler")
	}
	return &MediaHandler{Cfg: cfg, Media: media, Venues: venues, Board: board}
}

// ----- DTOs -----

// mediaReq carries both create and update payloads. Pointer fields
// distinguish "absent" from "zero" so updates only touch supplied
// fields. Multipart form values bind the same way as JSON.
type mediaReq struct {
	Title       *string `json:"title" form:"title"`
	Type        *string `json:"type" form:"type"`
	Status      *string `json:"status" form:"status"`
	AgeCategory *string `json:"age_category" form:"age_category"`
	Genre       *string `json:"genre" form:"genre"`
	Rating      *int    `json:"rating" form:"rating"`
	Review      *string `json:"review" form:"review"`
	Duration    *int    `json:"duration" form:"duration"`
	PageCount   *int    `json:"page_count" form:"page_count"`
	ReleaseDate *string `json:"release_date" form:"release_date"`
}

// requestedCategory reads the optional ?age_category query filter and
// checks it against the caller's allowed set. The bool result reports
// whether a category was requested at all.
func requestedCategory(c echo.Context, id access.Identity) (model.AgeCategory, bool, error) {
	raw := c.QueryParam("age_category")
	if raw == "" {
		raw = c.QueryParam("ageCategory")
	}
	if raw == "" {
		return "", false, nil
	}
	cat := model.AgeCategory(raw)
	if !cat.IsValid() {
		return "", true, echo.NewHTTPError(http.StatusBadRequest, "unknown age category")
	}
	if err := access.CheckRead(id, cat); err != nil {
		return "", true, err
	}
	return cat, true, nil
}

// readCategories resolves the category restriction for a read: the
// explicitly requested category when present, otherwise the caller's
// whole allowed set.
func readCategories(c echo.Context, id access.Identity) ([]model.AgeCategory, error) {
	cat, ok, err := requestedCategory(c, id)
	if err != nil {
		return nil, err
	}
	if ok {
		return []model.AgeCategory{cat}, nil
	}
	return id.Allowed, nil
}

func categoryError(c echo.Context, id access.Identity, err error) error {
	if errors.Is(err, access.ErrDenied) {
		return utils.Fail(c, http.StatusForbidden,
			"Your age group doesn't have access to this category")
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return utils.Fail(c, he.Code, he.Message.(string))
	}
	return utils.FailWith(c, http.StatusInternalServerError, "Access check failed", err.Error())
}

// List handles GET /v1/media. Guests see only kids content.
func (h *MediaHandler) List(c echo.Context) error {
	id := middleware.Current(c)
	cats, err := readCategories(c, id)
	if err != nil {
		return categoryError(c, id, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Media.List(ctx, cats)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error retrieving media", err.Error())
	}
	return utils.OK(c, "Media retrieved successfully", items)
}

// Get handles GET /v1/media/:id. The item's category must be in the
// caller's allowed set.
func (h *MediaHandler) Get(c echo.Context) error {
	id := middleware.Current(c)
	mediaID, err := parseID(c)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid media id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Media.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Media not found")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Error retrieving media", err.Error())
	}
	if !id.CanAccess(m.AgeCategory) {
		return utils.Fail(c, http.StatusForbidden,
			"Your age group doesn't have access to this category")
	}
	return utils.OK(c, "Media retrieved successfully", m)
}

// Filter handles GET /v1/media/filter/:type.
func (h *MediaHandler) Filter(c echo.Context) error {
	id := middleware.Current(c)
	mediaType := model.MediaType(c.Param("type"))
	if !mediaType.IsValid() {
		return utils.Fail(c, http.StatusBadRequest, "Type must be either 'movie' or 'book'")
	}
	cats, err := readCategories(c, id)
	if err != nil {
		return categoryError(c, id, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Media.Filter(ctx, mediaType, cats)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error retrieving media", err.Error())
	}
	return utils.OK(c, string(mediaType)+"s retrieved successfully", items)
}

// Search handles GET /v1/media/search?q=. Lookup is over title and
// review, restricted to the caller's allowed categories.
func (h *MediaHandler) Search(c echo.Context) error {
	id := middleware.Current(c)
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return utils.Fail(c, http.StatusBadRequest, "Query parameter 'q' is required")
	}
	cats, err := readCategories(c, id)
	if err != nil {
		return categoryError(c, id, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Media.Search(ctx, q, cats)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error searching media", err.Error())
	}
	return utils.OK(c, "Media retrieved successfully", items)
}

// Create handles POST /v1/media. Accepts JSON or multipart form with an
// optional "image" file part.
func (h *MediaHandler) Create(c echo.Context) error {
	id := middleware.Current(c)
	var req mediaReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Title == nil || req.Type == nil || req.Status == nil {
		return utils.Fail(c, http.StatusBadRequest, "Title, type, and status are required")
	}
	if req.AgeCategory == nil {
		return utils.Fail(c, http.StatusBadRequest, "Valid age category is required (all, kids, teen, adult)")
	}

	m := &model.Media{
		Title:       strings.TrimSpace(*req.Title),
		Type:        model.MediaType(*req.Type),
		Status:      model.MediaStatus(*req.Status),
		AgeCategory: model.AgeCategory(*req.AgeCategory),
		Rating:      req.Rating,
		Review:      req.Review,
		Duration:    req.Duration,
		PageCount:   req.PageCount,
	}
	if req.Genre != nil {
		m.Genre = model.Genre(*req.Genre)
	}
	if req.ReleaseDate != nil {
		t, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return utils.Fail(c, http.StatusBadRequest, "release_date must be YYYY-MM-DD")
		}
		m.ReleaseDate = &t
	}
	if msg, ok := m.Validate(); !ok {
		return utils.Fail(c, http.StatusBadRequest, msg)
	}
	if err := access.CheckWrite(id, m.AgeCategory); err != nil {
		return utils.Fail(c, http.StatusForbidden,
			"Your age group doesn't have access to this category")
	}

	if path, err := h.saveImage(c); err != nil {
		return utils.Fail(c, http.StatusBadRequest, err.Error())
	} else if path != "" {
		m.ImageURL = &path
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	mid, err := h.Media.Create(ctx, m)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error creating media", err.Error())
	}
	created, err := h.Media.GetByID(ctx, mid)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error creating media", err.Error())
	}
	return utils.Respond(c, http.StatusCreated, true, "Media created successfully", created)
}

// Update handles PUT /v1/media/:id. Only supplied fields change; the
// merged record must still satisfy every invariant and both the old and
// new category must be writable by the caller.
func (h *MediaHandler) Update(c echo.Context) error {
	id := middleware.Current(c)
	mediaID, err := parseID(c)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid media id")
	}
	var req mediaReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Media.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Media not found")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Error updating media", err.Error())
	}
	if err := access.CheckWrite(id, m.AgeCategory); err != nil {
		return utils.Fail(c, http.StatusForbidden,
			"Your age group doesn't have access to this category")
	}

	if req.Title != nil {
		m.Title = strings.TrimSpace(*req.Title)
	}
	if req.Type != nil {
		m.Type = model.MediaType(*req.Type)
	}
	if req.Status != nil {
		m.Status = model.MediaStatus(*req.Status)
	}
	if req.AgeCategory != nil {
		m.AgeCategory = model.AgeCategory(*req.AgeCategory)
	}
	if req.Genre != nil {
		m.Genre = model.Genre(*req.Genre)
	}
	if req.Rating != nil {
		m.Rating = req.Rating
	}
	if req.Review != nil {
		m.Review = req.Review
	}
	if req.Duration != nil {
		m.Duration = req.Duration
	}
	if req.PageCount != nil {
		m.PageCount = req.PageCount
	}
	if req.ReleaseDate != nil {
		t, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return utils.Fail(c, http.StatusBadRequest, "release_date must be YYYY-MM-DD")
		}
		m.ReleaseDate = &t
	}
	if msg, ok := m.Validate(); !ok {
		return utils.Fail(c, http.StatusBadRequest, msg)
	}
	// The resulting category must also be writable.
	if err := access.CheckWrite(id, m.AgeCategory); err != nil {
		return utils.Fail(c, http.StatusForbidden,
			"Your age group doesn't have access to this category")
	}

	if path, err := h.saveImage(c); err != nil {
		return utils.Fail(c, http.StatusBadRequest, err.Error())
	} else if path != "" {
		m.ImageURL = &path
	}

	if err := h.Media.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Media not found")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Error updating media", err.Error())
	}
	return utils.OK(c, "Media updated successfully", m)
}

// Delete handles DELETE /v1/media/:id.
func (h *MediaHandler) Delete(c echo.Context) error {
	id := middleware.Current(c)
	mediaID, err := parseID(c)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid media id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Media.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Media not found")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Error deleting media", err.Error())
	}
	if err := access.CheckWrite(id, m.AgeCategory); err != nil {
		return utils.Fail(c, http.StatusForbidden,
			"Your age group doesn't have access to this category")
	}

	if err := h.Media.Delete(ctx, mediaID); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Media not found")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Error deleting media", err.Error())
	}
	return utils.OK(c, "Media deleted successfully", m)
}

// RecordView handles PUT /v1/media/:id/view. The media and billboard
// counters are both plain increments, so a retry after partial failure
// converges.
func (h *MediaHandler) RecordView(c echo.Context) error {
	id := middleware.Current(c)
	mediaID, err := parseID(c)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid media id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Media.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Media not found")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Error incrementing view count", err.Error())
	}
	if !id.CanAccess(m.AgeCategory) {
		return utils.Fail(c, http.StatusForbidden,
			"Your age group doesn't have access to this category")
	}

	if err := h.Board.RecordView(ctx, m.ID, m.Type); err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error incrementing view count", err.Error())
	}
	m.ViewCount++
	return utils.OK(c, "View count incremented", m)
}

// venueReq is the payload for attaching a new venue to a media item.
type venueReq struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Location       string  `json:"location"`
	Price          float64 `json:"price"`
	Capacity       *int    `json:"capacity"`
	AvailableSeats *int    `json:"available_seats"`
	BookStock      *int    `json:"book_stock"`
	IsAvailable    *bool   `json:"is_available"`
}

// AddVenue handles POST /v1/media/:id/venues: creates the venue and
// links it to the media item.
func (h *MediaHandler) AddVenue(c echo.Context) error {
	id := middleware.Current(c)
	mediaID, err := parseID(c)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid media id")
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Media.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Media not found")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Error adding venue", err.Error())
	}
	if err := access.CheckWrite(id, m.AgeCategory); err != nil {
		return utils.Fail(c, http.StatusForbidden,
			"Your age group doesn't have access to this category")
	}

	v := &model.Venue{
		Name:           strings.TrimSpace(req.Name),
		Type:           model.VenueType(req.Type),
		Location:       strings.TrimSpace(req.Location),
		Price:          req.Price,
		Capacity:       req.Capacity,
		AvailableSeats: req.AvailableSeats,
		BookStock:      req.BookStock,
		IsAvailable:    true,
	}
	if req.IsAvailable != nil {
		v.IsAvailable = *req.IsAvailable
	}
	if msg, ok := v.Validate(); !ok {
		return utils.Fail(c, http.StatusBadRequest, msg)
	}

	vid, err := h.Venues.Create(ctx, v)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error adding venue", err.Error())
	}
	v.ID = vid
	if err := h.Media.AttachVenue(ctx, mediaID, vid); err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error adding venue", err.Error())
	}

	updated, err := h.Media.GetByID(ctx, mediaID)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Error adding venue", err.Error())
	}
	return utils.OK(c, "Venue added successfully", echo.Map{"media": updated, "venue": v})
}

func (h *MediaHandler) saveImage(c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No file part is fine; media without images are allowed.
		return "", nil
	}
	return upload.SaveImage(fh, h.Cfg.UploadDir, int64(h.Cfg.MaxUploadMB)*1024*1024)
}

func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
