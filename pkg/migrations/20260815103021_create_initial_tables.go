package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				email TEXT NOT NULL UNIQUE COLLATE NOCASE,
				username TEXT,
				password_hash TEXT NOT NULL
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE books (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER REFERENCES users (id) ON DELETE CASCADE NOT NULL,
				book_id TEXT NOT NULL,
				book_name TEXT NOT NULL DEFAULT '',
				book_title TEXT NOT NULL DEFAULT '',
				key_verse TEXT NOT NULL DEFAULT ''
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_books_user_id_book_id ON books (user_id, book_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE paragraphs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				book_uuid TEXT REFERENCES books (id) ON DELETE CASCADE NOT NULL,
				start_verse TEXT NOT NULL DEFAULT '',
				end_verse TEXT NOT NULL DEFAULT '',
				title TEXT NOT NULL DEFAULT '',
				verse_text TEXT NOT NULL DEFAULT '',
				position INTEGER NOT NULL
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_paragraphs_book_uuid ON paragraphs (book_uuid)`)
		if err != nil {
			return errors.WithStack(err)
		}
		// Divisions, sections, and segments are three independent annotation
		// layers with the same shape. start_para/end_para are paragraph
		// positions, not foreign keys.
		for _, table := range []string{"divisions", "sections", "segments"} {
			_, err = db.Exec(`
				CREATE TABLE ` + table + ` (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					book_uuid TEXT REFERENCES books (id) ON DELETE CASCADE NOT NULL,
					title TEXT NOT NULL DEFAULT '',
					start_para INTEGER NOT NULL,
					end_para INTEGER NOT NULL,
					position INTEGER NOT NULL
				)
`)
			if err != nil {
				return errors.WithStack(err)
			}
			_, err = db.Exec(`CREATE INDEX ix_` + table + `_book_uuid ON ` + table + ` (book_uuid)`)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		_, err = db.Exec(`
			CREATE TABLE user_preferences (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER REFERENCES users (id) ON DELETE CASCADE NOT NULL UNIQUE,
				theme_preset TEXT NOT NULL DEFAULT 'green',
				custom_colors TEXT
			)
`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"user_preferences", "segments", "sections", "divisions", "paragraphs", "books", "users"} {
			_, err := db.Exec(`DROP TABLE IF EXISTS ` + table)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
