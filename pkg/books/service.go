package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/verseflow/verseflow/pkg/errcodes"
	"github.com/verseflow/verseflow/pkg/models"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// List returns the book rows owned by the user, ordered by book_id. Child
// collections are not loaded.
func (svc *Service) List(ctx context.Context, userID int) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Where("b.user_id = ?", userID).
		Order("b.book_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// Retrieve returns the full book aggregate with all four child collections
// ordered by position.
func (svc *Service) Retrieve(ctx context.Context, userID int, bookID string) (*models.Book, error) {
	book := &models.Book{}

	err := svc.db.
		NewSelect().
		Model(book).
		Relation("Paragraphs", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("p.position ASC")
		}).
		Relation("Divisions", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("d.position ASC")
		}).
		Relation("Sections", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("s.position ASC")
		}).
		Relation("Segments", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("sg.position ASC")
		}).
		Where("b.user_id = ?", userID).
		Where("b.book_id = ?", bookID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	// Absent collections serialize as [], not null.
	if book.Paragraphs == nil {
		book.Paragraphs = []*models.Paragraph{}
	}
	if book.Divisions == nil {
		book.Divisions = []*models.Division{}
	}
	if book.Sections == nil {
		book.Sections = []*models.Section{}
	}
	if book.Segments == nil {
		book.Segments = []*models.Segment{}
	}

	return book, nil
}

// Save upserts the book row keyed on (user_id, book_id) and replaces all four
// child collections wholesale in a single transaction. Positions are assigned
// from slice order; no merge against prior state is attempted. On any failure
// the entire save rolls back and the prior state is preserved.
func (svc *Service) Save(ctx context.Context, userID int, bookID string, book *models.Book) error {
	now := time.Now()
	book.UserID = userID
	book.BookID = bookID
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	if book.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		book.ID = id.String()
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Upsert the book row. RETURNING resolves the surface id of an
		// existing row on the update path.
		_, err := tx.
			NewInsert().
			Model(book).
			On("CONFLICT (user_id, book_id) DO UPDATE").
			Set("book_name = EXCLUDED.book_name").
			Set("book_title = EXCLUDED.book_title").
			Set("key_verse = EXCLUDED.key_verse").
			Set("updated_at = EXCLUDED.updated_at").
			Returning("id").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		// Delete all previous children and save these new ones. Partial
		// updates are not supported.
		for _, model := range []interface{}{
			(*models.Paragraph)(nil),
			(*models.Division)(nil),
			(*models.Section)(nil),
			(*models.Segment)(nil),
		} {
			_, err := tx.
				NewDelete().
				Model(model).
				Where("book_uuid = ?", book.ID).
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		for i, paragraph := range book.Paragraphs {
			paragraph.BookUUID = book.ID
			paragraph.Position = i
		}
		if len(book.Paragraphs) > 0 {
			_, err := tx.NewInsert().Model(&book.Paragraphs).Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		for i, division := range book.Divisions {
			division.BookUUID = book.ID
			division.Position = i
		}
		if len(book.Divisions) > 0 {
			_, err := tx.NewInsert().Model(&book.Divisions).Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		for i, section := range book.Sections {
			section.BookUUID = book.ID
			section.Position = i
		}
		if len(book.Sections) > 0 {
			_, err := tx.NewInsert().Model(&book.Sections).Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		for i, segment := range book.Segments {
			segment.BookUUID = book.ID
			segment.Position = i
		}
		if len(book.Segments) > 0 {
			_, err := tx.NewInsert().Model(&book.Segments).Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Delete removes the book and its children. The children are deleted in the
// same transaction so the behavior doesn't depend on the connection's
// foreign_keys pragma.
func (svc *Service) Delete(ctx context.Context, userID int, bookID string) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book := &models.Book{}
		err := tx.
			NewSelect().
			Model(book).
			Column("b.id").
			Where("b.user_id = ?", userID).
			Where("b.book_id = ?", bookID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Book")
			}
			return errors.WithStack(err)
		}

		for _, model := range []interface{}{
			(*models.Paragraph)(nil),
			(*models.Division)(nil),
			(*models.Section)(nil),
			(*models.Segment)(nil),
		} {
			_, err := tx.
				NewDelete().
				Model(model).
				Where("book_uuid = ?", book.ID).
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		_, err = tx.
			NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", book.ID).
			Exec(ctx)
		return errors.WithStack(err)
	})
}
