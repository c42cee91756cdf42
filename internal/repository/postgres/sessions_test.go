package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

func setupMockDB(t *testing.T) (*sessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessionRepository(db, zap.NewNop()), mock
}

func TestSessionRepository_SaveUsesDigest(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := &session.Session{
		ID:        "raw-session-id",
		Token:     "tok",
		User:      &domain.User{ID: "u1", Email: "an@example.vn"},
		CartKey:   "cart-1",
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO storefront_sessions`)).
		WithArgs(digest("raw-session-id"), "tok", sqlmock.AnyArg(), "cart-1", now, now, sql.NullTime{Time: now.Add(time.Hour), Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Len(t, digest("raw-session-id"), 32)
	assert.NotEqual(t, []byte("raw-session-id"), digest("raw-session-id"))
}

func TestSessionRepository_Get(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"token", "user_data", "cart_key", "created_at", "updated_at", "expires_at"}).
		AddRow("tok", []byte(`{"id":"u1","email":"an@example.vn"}`), "cart-1", now, now, now.Add(time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT token, user_data, cart_key`)).
		WithArgs(digest("sid-1")).
		WillReturnRows(rows)

	s, err := repo.Get(context.Background(), "sid-1")

	require.NoError(t, err)
	assert.Equal(t, "sid-1", s.ID)
	assert.Equal(t, "tok", s.Token)
	require.NotNil(t, s.User)
	assert.Equal(t, "u1", s.User.ID)
	assert.Equal(t, now.Add(time.Hour), s.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetNotFound(t *testing.T) {
	repo, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT token, user_data, cart_key`)).
		WithArgs(digest("missing")).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")

	var notFound *apperrors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestSessionRepository_DeleteAndPurge(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM storefront_sessions WHERE id_digest = $1`)).
		WithArgs(digest("sid-1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM storefront_sessions WHERE expires_at IS NOT NULL`)).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.Delete(context.Background(), "sid-1"))
	n, err := repo.PurgeExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_WorksWithManager(t *testing.T) {
	repo, mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO storefront_sessions`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	manager := session.NewManager(repo, time.Hour, zap.NewNop())
	s, err := manager.Begin(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, s.CartKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
