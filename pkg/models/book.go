package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book is a user-owned document composed of ordered verse paragraphs and
// three independent layers of range-based annotation. The surface identifier
// (ID) is a generated uuid; BookID is the user-chosen key, unique per user.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        string    `bun:",pk,nullzero" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"lastModified"`
	UserID    int       `bun:",nullzero" json:"-"`
	BookID    string    `bun:",nullzero" json:"bookId"`
	BookName  string    `json:"bookName"`
	BookTitle string    `json:"bookTitle"`
	KeyVerse  string    `json:"keyVerse"`

	Paragraphs []*Paragraph `bun:"rel:has-many,join:id=book_uuid" json:"paragraphs"`
	Divisions  []*Division  `bun:"rel:has-many,join:id=book_uuid" json:"divisions"`
	Sections   []*Section   `bun:"rel:has-many,join:id=book_uuid" json:"sections"`
	Segments   []*Segment   `bun:"rel:has-many,join:id=book_uuid" json:"segments"`
}

// Paragraph is the base annotation unit: a verse range with optional title
// and text. Position is dense and zero-based, assigned from submission order
// on every save.
type Paragraph struct {
	bun.BaseModel `bun:"table:paragraphs,alias:p"`

	ID         int    `bun:",pk,autoincrement" json:"-"`
	BookUUID   string `bun:",nullzero" json:"-"`
	StartVerse string `json:"startVerse"`
	EndVerse   string `json:"endVerse"`
	Title      string `json:"title"`
	VerseText  string `json:"verseText"`
	Position   int    `json:"position"`
}

// Division, Section, and Segment are independent annotation layers over the
// same paragraph sequence. StartPara and EndPara are logical paragraph
// indices, not foreign keys: reordering or deleting paragraphs across saves
// can invalidate these ranges, and bounds are not validated on save.

type Division struct {
	bun.BaseModel `bun:"table:divisions,alias:d"`

	ID        int    `bun:",pk,autoincrement" json:"-"`
	BookUUID  string `bun:",nullzero" json:"-"`
	Title     string `json:"title"`
	StartPara int    `json:"startPara"`
	EndPara   int    `json:"endPara"`
	Position  int    `json:"position"`
}

type Section struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID        int    `bun:",pk,autoincrement" json:"-"`
	BookUUID  string `bun:",nullzero" json:"-"`
	Title     string `json:"title"`
	StartPara int    `json:"startPara"`
	EndPara   int    `json:"endPara"`
	Position  int    `json:"position"`
}

type Segment struct {
	bun.BaseModel `bun:"table:segments,alias:sg"`

	ID        int    `bun:",pk,autoincrement" json:"-"`
	BookUUID  string `bun:",nullzero" json:"-"`
	Title     string `json:"title"`
	StartPara int    `json:"startPara"`
	EndPara   int    `json:"endPara"`
	Position  int    `json:"position"`
}
