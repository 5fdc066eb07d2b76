package apiclient

import (
	"encoding/json"
	"time"
)

// User is the account representation returned by auth endpoints.
type User struct {
	ID       int     `json:"id"`
	Email    string  `json:"email"`
	Username *string `json:"username,omitempty"`
}

// Book is the full annotation aggregate for a single book.
type Book struct {
	BookID       string      `json:"bookId"`
	BookName     string      `json:"bookName"`
	BookTitle    string      `json:"bookTitle"`
	KeyVerse     string      `json:"keyVerse"`
	LastModified time.Time   `json:"lastModified,omitempty"`
	Paragraphs   []Paragraph `json:"paragraphs"`
	Divisions    []Range     `json:"divisions"`
	Sections     []Range     `json:"sections"`
	Segments     []Range     `json:"segments"`
}

// Paragraph is one verse paragraph within a book.
type Paragraph struct {
	StartVerse string `json:"startVerse"`
	EndVerse   string `json:"endVerse"`
	Title      string `json:"title"`
	VerseText  string `json:"verseText"`
	Position   int    `json:"position,omitempty"`
}

// Range is a titled span of paragraph indices, used by divisions, sections,
// and segments alike.
type Range struct {
	Title     string `json:"title"`
	StartPara int    `json:"startPara"`
	EndPara   int    `json:"endPara"`
	Position  int    `json:"position,omitempty"`
}

// BookIndexEntry is the per-book summary returned by ListBooks.
type BookIndexEntry struct {
	BookTitle    string    `json:"bookTitle"`
	BookName     string    `json:"bookName"`
	KeyVerse     string    `json:"keyVerse"`
	LastModified time.Time `json:"lastModified"`
}

// Preferences holds the user's display settings.
type Preferences struct {
	ThemePreset  string          `json:"themePreset"`
	CustomColors json.RawMessage `json:"customColors,omitempty"`
}
