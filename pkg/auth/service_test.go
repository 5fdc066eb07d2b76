package auth

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/verseflow/verseflow/pkg/errcodes"
	"github.com/verseflow/verseflow/pkg/migrations"
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

func TestServiceRegister(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "password123", nil)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, CheckPassword("password123", user.PasswordHash))
}

func TestServiceRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "password123", nil)
	require.NoError(t, err)

	// Duplicate detection is case-insensitive.
	_, err = svc.Register(ctx, "ALICE@example.com", "password456", nil)
	require.Error(t, err)

	var errResp *errcodes.Error
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, http.StatusUnprocessableEntity, errResp.HTTPCode)
	assert.Equal(t, "Email already registered", errResp.Message)
}

func TestServiceAuthenticate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "password123", nil)
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Lookup is case-insensitive.
	user, err = svc.Authenticate(ctx, "Alice@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestServiceAuthenticate_InvalidCredentials(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "password123", nil)
	require.NoError(t, err)

	// Unknown email and wrong password produce the same generic error so the
	// response doesn't leak which emails exist.
	_, wrongPasswordErr := svc.Authenticate(ctx, "alice@example.com", "wrongpassword")
	_, unknownEmailErr := svc.Authenticate(ctx, "nobody@example.com", "password123")

	for _, err := range []error{wrongPasswordErr, unknownEmailErr} {
		require.Error(t, err)
		var errResp *errcodes.Error
		require.ErrorAs(t, err, &errResp)
		assert.Equal(t, http.StatusUnauthorized, errResp.HTTPCode)
		assert.Equal(t, "Invalid email or password", errResp.Message)
	}
}

func TestServiceTokenRoundTrip(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-jwt-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "password123", nil)
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestServiceValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	svc := NewService(db, "test-jwt-secret")
	other := NewService(db, "a-different-secret")

	user, err := svc.Register(ctx, "alice@example.com", "password123", nil)
	require.NoError(t, err)

	token, err := other.GenerateToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestServiceValidateToken_Garbage(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-jwt-secret")

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
