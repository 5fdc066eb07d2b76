package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/verseflow/verseflow/pkg/migrations"
	"github.com/verseflow/verseflow/pkg/models"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestUser(ctx context.Context, t *testing.T, db *bun.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	return user
}

func TestServiceGet_CreatesDefaultRow(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "alice@example.com")

	prefs, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ThemePresetDefault, prefs.ThemePreset)
	assert.Empty(t, prefs.CustomColors)

	// The default row is persisted on first read, and a second read doesn't
	// create another one.
	_, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)

	count, err := db.NewSelect().
		Model((*models.UserPreferences)(nil)).
		Where("user_id = ?", user.ID).
		Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceSet_Upsert(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "alice@example.com")

	colors := json.RawMessage(`{"background":"#1a1a2e","text":"#eaeaea"}`)
	_, err := svc.Set(ctx, user.ID, "dark", colors)
	require.NoError(t, err)

	prefs, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", prefs.ThemePreset)
	assert.JSONEq(t, string(colors), string(prefs.CustomColors))

	// Saving again overwrites the same row instead of adding one. An empty
	// theme falls back to the default and missing colors clear the stored
	// ones.
	_, err = svc.Set(ctx, user.ID, "", nil)
	require.NoError(t, err)

	prefs, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ThemePresetDefault, prefs.ThemePreset)
	assert.Empty(t, prefs.CustomColors)

	count, err := db.NewSelect().
		Model((*models.UserPreferences)(nil)).
		Where("user_id = ?", user.ID).
		Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceIsolatedPerUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	alice := createTestUser(ctx, t, db, "alice@example.com")
	bob := createTestUser(ctx, t, db, "bob@example.com")

	_, err := svc.Set(ctx, alice.ID, "dark", nil)
	require.NoError(t, err)

	bobPrefs, err := svc.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ThemePresetDefault, bobPrefs.ThemePreset)
}
