package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/mediatrack/media-billboard/internal/handler"    // import the handlers that implement business logic
	"github.com/mediatrack/media-billboard/internal/middleware" // import middleware for identity resolution and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler. Load
	// balancers and monitoring systems use it to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints and the
// authenticated profile routes. Unauthenticated operations live under
// /v1/auth, protected endpoints under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Register and login do not require an existing session; each handler
	// is responsible for issuing tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	// Profile routes require a resolved, non-guest identity.
	auth := e.Group("/v1",
		middleware.ResolveIdentity(jwtSecret),
		middleware.RequireAuth(),
	)
	auth.GET("/me", a.Me)
	auth.PUT("/me/age", a.UpdateAge)
}
