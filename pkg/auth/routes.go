package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all auth routes on the given group and returns the
// auth service so the caller can build the middleware from it.
func RegisterRoutes(g *echo.Group, db *bun.DB, jwtSecret string) *Service {
	authService := NewService(db, jwtSecret)

	h := &handler{
		authService: authService,
	}

	auth := g.Group("/auth")
	auth.POST("/login", h.login)
	auth.POST("/register", h.register)
	auth.GET("/verify", h.verify, NewMiddleware(authService).Authenticate)

	return authService
}
