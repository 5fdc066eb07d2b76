package books

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"github.com/verseflow/verseflow/pkg/auth"
)

// RegisterRoutes registers book routes on the given group. All routes require
// authentication.
func RegisterRoutes(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		bookService: NewService(db),
	}

	books := g.Group("/books")
	books.Use(authMiddleware.Authenticate)

	books.GET("", h.list)
	books.GET("/:bookId", h.retrieve)
	books.POST("/:bookId", h.save)
	books.DELETE("/:bookId", h.delete)
}
