package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/mediatrack/media-billboard/internal/billboard"
	"github.com/mediatrack/media-billboard/internal/repository"
	"github.com/mediatrack/media-billboard/internal/service"
)

// mediaHandlerForValidation builds a handler for request paths that are
// rejected before any repository call.
func mediaHandlerForValidation() *MediaHandler {
	return NewMediaHandler(
		testConfig(),
		repository.NewMediaRepo(nil),
		repository.NewVenueRepo(nil),
		billboard.New(nil, 5),
	)
}

func getWithQuery(e *echo.Echo, target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func TestListDeniesCategoryOutsideAllowedSet(t *testing.T) {
	e := echo.New()
	h := mediaHandlerForValidation()

	// Without a token the caller is a guest restricted to kids content.
	rec := getWithQuery(e, "/v1/media?age_category=adult", h.List)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "age group")
}

func TestListRejectsUnknownCategory(t *testing.T) {
	e := echo.New()
	h := mediaHandlerForValidation()

	rec := getWithQuery(e, "/v1/media?age_category=everyone", h.List)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRequiresQuery(t *testing.T) {
	e := echo.New()
	h := mediaHandlerForValidation()

	rec := getWithQuery(e, "/v1/media/search", h.Search)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "'q' is required")
}

func TestFilterRejectsUnknownType(t *testing.T) {
	e := echo.New()
	h := mediaHandlerForValidation()

	req := httptest.NewRequest(http.MethodGet, "/v1/media/filter/podcast", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("type")
	c.SetParamValues("podcast")
	_ = h.Filter(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRequiresFields(t *testing.T) {
	e := echo.New()
	h := mediaHandlerForValidation()

	rec := postJSON(e, "/v1/media", `{"title":"only a title"}`, h.Create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateDeniesGuestWrites(t *testing.T) {
	e := echo.New()
	h := mediaHandlerForValidation()

	body := `{"title":"kids movie","type":"movie","status":"plan","age_category":"kids","duration":90}`
	rec := postJSON(e, "/v1/media", body, h.Create)
	// Guests may read kids content but never write it.
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	e := echo.New()
	h := mediaHandlerForValidation()

	// A movie with a page count violates the type/length-field pairing.
	body := `{"title":"bad movie","type":"movie","status":"plan","age_category":"kids","duration":90,"page_count":10}`
	rec := postJSON(e, "/v1/media", body, h.Create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "page_count is not valid for movies")
}

func TestPurchaseRequiresIDs(t *testing.T) {
	e := echo.New()
	h := NewTicketHandler(service.NewTicketService(nil, billboard.New(nil, 5), nil), repository.NewTicketRepo(nil))

	rec := postJSON(e, "/v1/media/tickets/purchase", `{"quantity":2}`, h.Purchase)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "media_id and venue_id are required")
}

func TestBillboardSearchValidation(t *testing.T) {
	e := echo.New()
	h := NewBillboardHandler(billboard.New(nil, 5))

	rec := getWithQuery(e, "/v1/media/billboard/search?year=2025", h.Search)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "'week' is required")

	rec = getWithQuery(e, "/v1/media/billboard/search?week=3", h.Search)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "'year' is required")

	rec = getWithQuery(e, "/v1/media/billboard/search?week=0&year=2025", h.Search)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "between 1 and 52")

	rec = getWithQuery(e, "/v1/media/billboard/search?week=3&year=2025&media_type=podcast", h.Search)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", strings.NewReader(""))
	c := e.NewContext(req, httptest.NewRecorder())

	c.SetParamNames("id")
	c.SetParamValues("17")
	id, err := parseID(c)
	assert.NoError(t, err)
	assert.Equal(t, uint64(17), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		c.SetParamValues(bad)
		_, err := parseID(c)
		assert.Error(t, err, bad)
	}
}
