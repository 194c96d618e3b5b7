package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatrack/media-billboard/internal/config"
	"github.com/mediatrack/media-billboard/internal/repository"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:   "handler-test-secret",
		TokenTTLMin: 5,
		BcryptCost:  4,
		UploadDir:   "uploads",
		MaxUploadMB: 5,
	}
}

// authHandlerForValidation builds a handler whose repository is never
// reached: every request under test fails input validation first.
func authHandlerForValidation() *AuthHandler {
	return NewAuthHandler(testConfig(), repository.NewUserRepo(nil))
}

func postJSON(e *echo.Echo, path, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func TestRegisterMissingFields(t *testing.T) {
	e := echo.New()
	h := authHandlerForValidation()

	rec := postJSON(e, "/v1/auth/register", `{"email":"a@b.co"}`, h.Register)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool                `json:"success"`
		Payload map[string][]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.ElementsMatch(t,
		[]string{"first_name", "last_name", "username", "age", "password"},
		body.Payload["missing"])
}

func TestRegisterInvalidEmail(t *testing.T) {
	e := echo.New()
	h := authHandlerForValidation()

	rec := postJSON(e, "/v1/auth/register",
		`{"first_name":"A","last_name":"B","username":"ab","age":20,"email":"not-an-email","password":"longenough"}`,
		h.Register)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email format")
}

func TestRegisterShortPassword(t *testing.T) {
	e := echo.New()
	h := authHandlerForValidation()

	rec := postJSON(e, "/v1/auth/register",
		`{"first_name":"A","last_name":"B","username":"ab","age":20,"email":"a@b.co","password":"short"}`,
		h.Register)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 8 characters")
}

func TestRegisterAgeOutOfRange(t *testing.T) {
	e := echo.New()
	h := authHandlerForValidation()

	for _, age := range []int{2, 121} {
		rec := postJSON(e, "/v1/auth/register",
			`{"first_name":"A","last_name":"B","username":"ab","age":`+strconv.Itoa(age)+`,"email":"a@b.co","password":"longenough"}`,
			h.Register)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "between 3 and 120")
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	e := echo.New()
	h := authHandlerForValidation()

	rec := postJSON(e, "/v1/auth/login", `{"email":"a@b.co"}`, h.Login)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email and password are required")
}
