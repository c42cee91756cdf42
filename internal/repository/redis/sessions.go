package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

const sessionPrefix = "storefront:session:"

type sessionRepository struct {
	client goredis.Cmdable
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionRepository stores sessions as JSON values that expire with the
// session itself.
func NewSessionRepository(client goredis.Cmdable, logger *zap.Logger) *sessionRepository {
	return &sessionRepository{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	raw, err := r.client.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, &apperrors.ErrNotFound{Resource: "session", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get session", zap.Error(err))
		return nil, err
	}

	var s session.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (r *sessionRepository) Save(ctx context.Context, s *session.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	// zero means no expiry
	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return r.Delete(ctx, s.ID)
		}
	}

	if err := r.client.Set(ctx, sessionPrefix+s.ID, raw, ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", zap.Error(err))
		return err
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionPrefix+id).Err(); err != nil {
		r.logger.Error("Failed to delete session", zap.Error(err))
		return err
	}
	return nil
}

var _ session.Store = (*sessionRepository)(nil)
