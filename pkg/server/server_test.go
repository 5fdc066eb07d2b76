package server_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/verseflow/verseflow/pkg/apiclient"
	"github.com/verseflow/verseflow/pkg/config"
	"github.com/verseflow/verseflow/pkg/migrations"
	"github.com/verseflow/verseflow/pkg/server"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	cfg := &config.Config{
		DatabaseFilePath: ":memory:",
		JWTSecret:        "test-jwt-secret",
		ServerHost:       "127.0.0.1",
		ServerPort:       0,
	}

	srv, err := server.New(cfg, db)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})

	return ts
}

func TestServer_FullFlow(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	c := apiclient.New(ts.URL, apiclient.NewSession())

	// Register, then exercise every authenticated surface through the same
	// client.
	user, err := c.Register(ctx, "alice@example.com", "", "password123", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	verified, err := c.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	bookID, err := c.SaveBook(ctx, "genesis", &apiclient.Book{
		BookName:  "Genesis",
		BookTitle: "The Book of Beginnings",
		KeyVerse:  "1:1",
		Paragraphs: []apiclient.Paragraph{
			{StartVerse: "1:1", EndVerse: "1:5", Title: "Day one", VerseText: "In the beginning..."},
			{StartVerse: "1:6", EndVerse: "1:8", Title: "Day two", VerseText: "And God said..."},
		},
		Divisions: []apiclient.Range{
			{Title: "Creation", StartPara: 0, EndPara: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "genesis", bookID)

	book, err := c.LoadBook(ctx, "genesis")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Genesis", book.BookName)
	require.Len(t, book.Paragraphs, 2)
	assert.Equal(t, "Day one", book.Paragraphs[0].Title)
	assert.Equal(t, 1, book.Paragraphs[1].Position)
	require.Len(t, book.Divisions, 1)

	// A loaded book can be saved back as-is, server-assigned fields and all.
	bookID, err = c.SaveBook(ctx, "genesis", book)
	require.NoError(t, err)
	assert.Equal(t, "genesis", bookID)

	index, err := c.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, index, 1)
	assert.Equal(t, "The Book of Beginnings", index["genesis"].BookTitle)

	prefs, err := c.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, "green", prefs.ThemePreset)

	err = c.SavePreferences(ctx, &apiclient.Preferences{ThemePreset: "dark"})
	require.NoError(t, err)

	prefs, err = c.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", prefs.ThemePreset)

	err = c.DeleteBook(ctx, "genesis")
	require.NoError(t, err)

	book, err = c.LoadBook(ctx, "genesis")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestServer_LoginFlow(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	reg := apiclient.New(ts.URL, apiclient.NewSession())
	_, err := reg.Register(ctx, "alice@example.com", "", "password123", "password123")
	require.NoError(t, err)

	// A fresh client logs in with the same credentials.
	c := apiclient.New(ts.URL, apiclient.NewSession())
	user, err := c.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = c.ListBooks(ctx)
	require.NoError(t, err)
}

func TestServer_LoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	reg := apiclient.New(ts.URL, apiclient.NewSession())
	_, err := reg.Register(ctx, "alice@example.com", "", "password123", "password123")
	require.NoError(t, err)

	c := apiclient.New(ts.URL, apiclient.NewSession())
	hookCalled := false
	c.OnUnauthorized = func() {
		hookCalled = true
	}

	_, err = c.Login(ctx, "alice@example.com", "wrong-password")
	require.Error(t, err)
	assert.False(t, hookCalled)

	apiErr := &apiclient.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestServer_RejectsUnauthenticated(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	session := apiclient.NewSession()
	c := apiclient.New(ts.URL, session)

	hookCalled := false
	c.OnUnauthorized = func() {
		hookCalled = true
	}

	_, err := c.ListBooks(ctx)
	require.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.True(t, hookCalled)
}

func TestServer_InvalidTokenClearsSession(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	session := apiclient.NewSession()
	require.NoError(t, session.SetAuth("not-a-real-token", nil))
	c := apiclient.New(ts.URL, session)

	_, err := c.ListBooks(ctx)
	require.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.Empty(t, session.BearerToken())
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
