package preferences

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"github.com/verseflow/verseflow/pkg/auth"
)

// RegisterRoutes registers preferences routes on the given group. All routes
// require authentication.
func RegisterRoutes(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		preferencesService: NewService(db),
	}

	prefs := g.Group("/preferences")
	prefs.Use(authMiddleware.Authenticate)

	prefs.GET("", h.get)
	prefs.POST("", h.set)
}
