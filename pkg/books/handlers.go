package books

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/verseflow/verseflow/pkg/auth"
	"github.com/verseflow/verseflow/pkg/errcodes"
	"github.com/verseflow/verseflow/pkg/models"
)

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	books, err := h.bookService.List(ctx, user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	index := map[string]IndexEntry{}
	for _, book := range books {
		index[book.BookID] = IndexEntry{
			BookTitle:    book.BookTitle,
			BookName:     book.BookName,
			KeyVerse:     book.KeyVerse,
			LastModified: book.UpdatedAt,
		}
	}

	resp := struct {
		Books map[string]IndexEntry `json:"books"`
	}{index}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	book, err := h.bookService.Retrieve(ctx, user.ID, c.Param("bookId"))
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) save(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := SaveBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	bookID := c.Param("bookId")

	book := &models.Book{
		BookName:   params.BookName,
		BookTitle:  params.BookTitle,
		KeyVerse:   params.KeyVerse,
		Paragraphs: make([]*models.Paragraph, 0, len(params.Paragraphs)),
		Divisions:  make([]*models.Division, 0, len(params.Divisions)),
		Sections:   make([]*models.Section, 0, len(params.Sections)),
		Segments:   make([]*models.Segment, 0, len(params.Segments)),
	}
	for _, p := range params.Paragraphs {
		book.Paragraphs = append(book.Paragraphs, &models.Paragraph{
			StartVerse: p.StartVerse,
			EndVerse:   p.EndVerse,
			Title:      p.Title,
			VerseText:  p.VerseText,
		})
	}
	for _, d := range params.Divisions {
		book.Divisions = append(book.Divisions, &models.Division{
			Title:     d.Title,
			StartPara: d.StartPara,
			EndPara:   d.EndPara,
		})
	}
	for _, s := range params.Sections {
		book.Sections = append(book.Sections, &models.Section{
			Title:     s.Title,
			StartPara: s.StartPara,
			EndPara:   s.EndPara,
		})
	}
	for _, sg := range params.Segments {
		book.Segments = append(book.Segments, &models.Segment{
			Title:     sg.Title,
			StartPara: sg.StartPara,
			EndPara:   sg.EndPara,
		})
	}

	if err := h.bookService.Save(ctx, user.ID, bookID, book); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, SaveBookResponse{
		Message: "Book saved successfully",
		BookID:  bookID,
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	if err := h.bookService.Delete(ctx, user.ID, c.Param("bookId")); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, MessageResponse{
		Message: "Book deleted successfully",
	}))
}
