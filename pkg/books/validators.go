package books

import "time"

// SaveBookPayload is a full snapshot of the book; absent child arrays clear
// that collection.
type SaveBookPayload struct {
	BookName   string           `json:"bookName" validate:"max=200" mod:"trim"`
	BookTitle  string           `json:"bookTitle" validate:"max=300" mod:"trim"`
	KeyVerse   string           `json:"keyVerse" validate:"max=100" mod:"trim"`
	Paragraphs []ParagraphInput `json:"paragraphs"`
	Divisions  []RangeInput     `json:"divisions"`
	Sections   []RangeInput     `json:"sections"`
	Segments   []RangeInput     `json:"segments"`
}

type ParagraphInput struct {
	StartVerse string `json:"startVerse" validate:"max=50"`
	EndVerse   string `json:"endVerse" validate:"max=50"`
	Title      string `json:"title" validate:"max=300"`
	VerseText  string `json:"verseText"`
}

// RangeInput is a division/section/segment entry. StartPara and EndPara are
// paragraph positions; bounds are not validated against the paragraph count.
type RangeInput struct {
	Title     string `json:"title" validate:"max=300"`
	StartPara int    `json:"startPara"`
	EndPara   int    `json:"endPara"`
}

// IndexEntry is a book's summary row in the list response.
type IndexEntry struct {
	BookTitle    string    `json:"bookTitle"`
	BookName     string    `json:"bookName"`
	KeyVerse     string    `json:"keyVerse"`
	LastModified time.Time `json:"lastModified"`
}

// SaveBookResponse acknowledges a save.
type SaveBookResponse struct {
	Message string `json:"message"`
	BookID  string `json:"bookId"`
}

// MessageResponse is a bare acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}
