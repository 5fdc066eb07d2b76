package apiclient

import (
	"context"
	"net/url"
)

type listBooksResponse struct {
	Books map[string]BookIndexEntry `json:"books"`
}

// saveBookRequest is the POST body for a book save. It carries only the keys
// the server declares; server-assigned fields from a loaded book (bookId,
// lastModified, position) must not be echoed back because the server rejects
// unknown parameters.
type saveBookRequest struct {
	BookName   string           `json:"bookName"`
	BookTitle  string           `json:"bookTitle"`
	KeyVerse   string           `json:"keyVerse"`
	Paragraphs []paragraphInput `json:"paragraphs"`
	Divisions  []rangeInput     `json:"divisions"`
	Sections   []rangeInput     `json:"sections"`
	Segments   []rangeInput     `json:"segments"`
}

type paragraphInput struct {
	StartVerse string `json:"startVerse"`
	EndVerse   string `json:"endVerse"`
	Title      string `json:"title"`
	VerseText  string `json:"verseText"`
}

type rangeInput struct {
	Title     string `json:"title"`
	StartPara int    `json:"startPara"`
	EndPara   int    `json:"endPara"`
}

func newSaveBookRequest(book *Book) saveBookRequest {
	req := saveBookRequest{
		BookName:   book.BookName,
		BookTitle:  book.BookTitle,
		KeyVerse:   book.KeyVerse,
		Paragraphs: make([]paragraphInput, 0, len(book.Paragraphs)),
		Divisions:  make([]rangeInput, 0, len(book.Divisions)),
		Sections:   make([]rangeInput, 0, len(book.Sections)),
		Segments:   make([]rangeInput, 0, len(book.Segments)),
	}
	for _, p := range book.Paragraphs {
		req.Paragraphs = append(req.Paragraphs, paragraphInput{
			StartVerse: p.StartVerse,
			EndVerse:   p.EndVerse,
			Title:      p.Title,
			VerseText:  p.VerseText,
		})
	}
	for _, d := range book.Divisions {
		req.Divisions = append(req.Divisions, rangeInput{Title: d.Title, StartPara: d.StartPara, EndPara: d.EndPara})
	}
	for _, s := range book.Sections {
		req.Sections = append(req.Sections, rangeInput{Title: s.Title, StartPara: s.StartPara, EndPara: s.EndPara})
	}
	for _, sg := range book.Segments {
		req.Segments = append(req.Segments, rangeInput{Title: sg.Title, StartPara: sg.StartPara, EndPara: sg.EndPara})
	}
	return req
}

type saveBookResponse struct {
	Message string `json:"message"`
	BookID  string `json:"bookId"`
}

// ListBooks returns the index of the user's books keyed by book ID.
func (c *Client) ListBooks(ctx context.Context) (map[string]BookIndexEntry, error) {
	resp := listBooksResponse{}
	err := c.get(ctx, "/api/books", &resp)
	if err != nil {
		return nil, err
	}
	return resp.Books, nil
}

// LoadBook fetches the full aggregate for one book. It returns nil (and no
// error) when the book doesn't exist, so callers can treat a missing book as
// a fresh one.
func (c *Client) LoadBook(ctx context.Context, bookID string) (*Book, error) {
	book := Book{}
	err := c.get(ctx, "/api/books/"+url.PathEscape(bookID), &book)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// SaveBook upserts the whole aggregate under the given book ID and returns
// the ID the server acknowledged. A book returned by LoadBook can be passed
// back unchanged; the server-assigned fields are stripped from the request.
func (c *Client) SaveBook(ctx context.Context, bookID string, book *Book) (string, error) {
	resp := saveBookResponse{}
	err := c.post(ctx, "/api/books/"+url.PathEscape(bookID), newSaveBookRequest(book), &resp)
	if err != nil {
		return "", err
	}
	return resp.BookID, nil
}

// DeleteBook removes a book and all of its annotations.
func (c *Client) DeleteBook(ctx context.Context, bookID string) error {
	return c.delete(ctx, "/api/books/"+url.PathEscape(bookID), nil)
}

// GetPreferences fetches the user's display settings. First-time users get
// the server's defaults.
func (c *Client) GetPreferences(ctx context.Context) (*Preferences, error) {
	prefs := Preferences{}
	err := c.get(ctx, "/api/preferences", &prefs)
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// SavePreferences stores the user's display settings.
func (c *Client) SavePreferences(ctx context.Context, prefs *Preferences) error {
	return c.post(ctx, "/api/preferences", prefs, nil)
}
