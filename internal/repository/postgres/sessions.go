package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	"github.com/phonestore/storefront/pkg/errors"
)

// SessionSchema creates the session table
const SessionSchema = `
CREATE TABLE IF NOT EXISTS storefront_sessions (
	id_digest  BYTEA PRIMARY KEY,
	token      TEXT NOT NULL DEFAULT '',
	user_data  JSONB,
	cart_key   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS storefront_sessions_expires_at_idx ON storefront_sessions (expires_at);
`

type sessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSessionRepository creates a postgres-backed session store. Rows are
// keyed by a blake2b digest of the session id so raw ids never reach the
// database.
func NewSessionRepository(db *sql.DB, logger *zap.Logger) *sessionRepository {
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the table if it does not exist
func (r *sessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, SessionSchema); err != nil {
		return fmt.Errorf("failed to create session schema: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	query := `
		SELECT token, user_data, cart_key, created_at, updated_at, expires_at
		FROM storefront_sessions
		WHERE id_digest = $1
	`

	s := session.Session{ID: id}
	var userData []byte
	var expiresAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, digest(id)).Scan(
		&s.Token,
		&userData,
		&s.CartKey,
		&s.CreatedAt,
		&s.UpdatedAt,
		&expiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "session"}
	}
	if err != nil {
		r.logger.Error("Failed to get session", zap.Error(err))
		return nil, err
	}

	if len(userData) > 0 {
		var user domain.User
		if err := json.Unmarshal(userData, &user); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session user: %w", err)
		}
		s.User = &user
	}
	if expiresAt.Valid {
		s.ExpiresAt = expiresAt.Time
	}

	return &s, nil
}

func (r *sessionRepository) Save(ctx context.Context, s *session.Session) error {
	query := `
		INSERT INTO storefront_sessions (id_digest, token, user_data, cart_key, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id_digest) DO UPDATE SET
			token = EXCLUDED.token,
			user_data = EXCLUDED.user_data,
			cart_key = EXCLUDED.cart_key,
			updated_at = EXCLUDED.updated_at,
			expires_at = EXCLUDED.expires_at
	`

	var userData []byte
	if s.User != nil {
		var err error
		userData, err = json.Marshal(s.User)
		if err != nil {
			return fmt.Errorf("failed to marshal session user: %w", err)
		}
	}
	var expiresAt sql.NullTime
	if !s.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: s.ExpiresAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		digest(s.ID),
		s.Token,
		userData,
		s.CartKey,
		s.CreatedAt,
		s.UpdatedAt,
		expiresAt,
	)
	if err != nil {
		r.logger.Error("Failed to save session", zap.Error(err))
		return err
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM storefront_sessions WHERE id_digest = $1`

	if _, err := r.db.ExecContext(ctx, query, digest(id)); err != nil {
		r.logger.Error("Failed to delete session", zap.Error(err))
		return err
	}
	return nil
}

// PurgeExpired removes sessions that expired before now and returns how many
func (r *sessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM storefront_sessions WHERE expires_at IS NOT NULL AND expires_at < $1`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

func digest(id string) []byte {
	sum := blake2b.Sum256([]byte(id))
	return sum[:]
}

var _ session.Store = (*sessionRepository)(nil)
