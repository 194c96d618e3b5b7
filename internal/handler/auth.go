package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes and primitives
	"regexp"   // email format validation
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/mediatrack/media-billboard/internal/access"
	"github.com/mediatrack/media-billboard/internal/config"
	"github.com/mediatrack/media-billboard/internal/middleware"
	"github.com/mediatrack/media-billboard/internal/model"
	"github.com/mediatrack/media-billboard/internal/repository"
	"github.com/mediatrack/media-billboard/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Age       int    `json:"age"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type updateAgeReq struct {
	Age int `json:"age"`
}

type userPart struct {
	ID                uint64   `json:"id"`
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Username          string   `json:"username"`
	Email             string   `json:"email"`
	Age               int      `json:"age"`
	Role              string   `json:"role"`
	AllowedCategories []string `json:"allowed_categories"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

func userToPart(u *model.User) userPart {
	return userPart{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Username:          u.Username,
		Email:             u.Email,
		Age:               u.Age,
		Role:              u.Role,
		AllowedCategories: u.AllowedCategories,
	}
}

// Register: validate, create user with derived categories, return a token
// immediately. Age outside [3,120] is rejected before any record exists.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	missing := []string{}
	if req.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if req.LastName == "" {
		missing = append(missing, "last_name")
	}
	if req.Username == "" {
		missing = append(missing, "username")
	}
	if req.Age == 0 {
		missing = append(missing, "age")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return utils.Respond(c, http.StatusBadRequest, false, "Validation errors", map[string][]string{"missing": missing})
	}
	if !emailPattern.MatchString(req.Email) {
		return utils.Fail(c, http.StatusBadRequest, "Invalid email format")
	}
	if len(req.Password) < 8 {
		return utils.Fail(c, http.StatusBadRequest, "Password must be at least 8 characters")
	}
	if req.Age < access.MinAge || req.Age > access.MaxAge {
		return utils.Fail(c, http.StatusBadRequest, "Age must be between 3 and 120")
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Registration failed", err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Age:          req.Age,
		Role:         "user",
	}
	uid, err := h.Users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return utils.Fail(c, http.StatusConflict, "Username or email already exists")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Registration failed", err.Error())
	}
	u.ID = uid

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u, h.Cfg.TokenTTLMin)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Issuing token failed", err.Error())
	}

	return utils.Respond(c, http.StatusCreated, true, "User registered successfully", authResp{
		User:    userToPart(u),
		Token:   token.Token,
		Expires: token.Exp,
	})
}

// Login: verify credentials and return a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return utils.Fail(c, http.StatusBadRequest, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.Fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Login failed", err.Error())
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return utils.Fail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u, h.Cfg.TokenTTLMin)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Issuing token failed", err.Error())
	}

	return utils.OK(c, "Login successful", authResp{
		User:    userToPart(u),
		Token:   token.Token,
		Expires: token.Exp,
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	id := middleware.Current(c)
	if id.Guest {
		return utils.Fail(c, http.StatusUnauthorized, "Authentication required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.Fail(c, http.StatusNotFound, "User not found")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Loading user failed", err.Error())
	}
	return utils.OK(c, "User retrieved successfully", userToPart(u))
}

// UpdateAge changes the caller's age; the stored allowed categories are
// rederived in the same update. A new token must be obtained for the
// new category set to take effect on subsequent requests.
func (h *AuthHandler) UpdateAge(c echo.Context) error {
	id := middleware.Current(c)
	if id.Guest {
		return utils.Fail(c, http.StatusUnauthorized, "Authentication required")
	}
	var req updateAgeReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Age < access.MinAge || req.Age > access.MaxAge {
		return utils.Fail(c, http.StatusBadRequest, "Age must be between 3 and 120")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateAge(ctx, id.UserID, req.Age); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.Fail(c, http.StatusNotFound, "User not found")
		}
		return utils.FailWith(c, http.StatusInternalServerError, "Updating age failed", err.Error())
	}
	u, err := h.Users.GetByID(ctx, id.UserID)
	if err != nil {
		return utils.FailWith(c, http.StatusInternalServerError, "Loading user failed", err.Error())
	}
	return utils.OK(c, "Age updated successfully", userToPart(u))
}
