package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/mediatrack/media-billboard/internal/access"
	"github.com/mediatrack/media-billboard/internal/model"
	"github.com/mediatrack/media-billboard/internal/utils"
)

// identityKey is the context key the resolved identity is stored under.
const identityKey = "identity"

// ResolveIdentity returns an Echo middleware that turns the request's
// Bearer token into an explicit access.Identity value. Requests without
// an Authorization header proceed as guests ({kids}, no writes); a
// present but invalid or expired token is rejected with 401 rather than
// silently downgraded. Handlers retrieve the value via Current instead
// of reading raw claims from the request.
func ResolveIdentity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				c.Set(identityKey, access.Guest())
				return next(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Reject any signing method other than HMAC.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return utils.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return utils.Fail(c, http.StatusUnauthorized, "Invalid token claims")
			}

			c.Set(identityKey, identityFromClaims(claims))
			return next(c)
		}
	}
}

// RequireAuth rejects guest identities. It assumes ResolveIdentity ran
// earlier in the chain.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Current(c).Guest {
				return utils.Fail(c, http.StatusUnauthorized, "Authentication required")
			}
			return next(c)
		}
	}
}

// RequireRole enforces that the authenticated identity has one of the
// given roles, responding 403 otherwise.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := Current(c)
			if id.Guest || !allowed[id.Role] {
				return utils.Fail(c, http.StatusForbidden, "Forbidden. Insufficient permissions")
			}
			return next(c)
		}
	}
}

// Current returns the identity resolved for this request, falling back
// to the guest identity when the middleware did not run.
func Current(c echo.Context) access.Identity {
	if v, ok := c.Get(identityKey).(access.Identity); ok {
		return v
	}
	return access.Guest()
}

// identityFromClaims maps the token claims into an Identity. Numeric
// claims arrive as float64 from the JSON decoder; the allowed list
// arrives as []interface{}.
func identityFromClaims(claims jwt.MapClaims) access.Identity {
	id := access.Identity{}
	if v, ok := claims["sub"].(float64); ok {
		id.UserID = uint64(v)
	}
	if v, ok := claims["age"].(float64); ok {
		id.Age = int(v)
	}
	if v, ok := claims["role"].(string); ok {
		id.Role = v
	}
	if list, ok := claims["allowed"].([]interface{}); ok {
		for _, item := range list {
			if s, ok := item.(string); ok {
				cat := model.AgeCategory(s)
				if cat.IsValid() {
					id.Allowed = append(id.Allowed, cat)
				}
			}
		}
	}
	// A token with no usable category claims behaves like a guest read
	// identity but keeps its authenticated user ID for writes.
	if len(id.Allowed) == 0 {
		id.Allowed = []model.AgeCategory{model.CategoryKids}
	}
	return id
}
