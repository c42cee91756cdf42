package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/config"
	"github.com/phonestore/storefront/internal/repository/file"
	"github.com/phonestore/storefront/internal/repository/postgres"
	"github.com/phonestore/storefront/internal/repository/redis"
	"github.com/phonestore/storefront/internal/service"
	"github.com/phonestore/storefront/internal/session"
)

const purgeInterval = time.Hour

// stores holds the session store, the optional suggestion cache and the
// connections behind them
type stores struct {
	Sessions    session.Store
	Suggestions service.SuggestionCache

	db    *sql.DB
	redis *goredis.Client
	stop  context.CancelFunc
}

func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	s := &stores{}

	if cfg.Redis.URL != "" {
		client, err := redis.NewClient(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		s.redis = client
		s.Suggestions = redis.NewSuggestionCache(client, cfg.Search.CacheTTL)
		log.Info("Suggestion cache enabled", zap.Duration("ttl", cfg.Search.CacheTTL))
	}

	switch cfg.Session.Store {
	case "postgres":
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.db = db
		repo := postgres.NewSessionRepository(db, log)
		if err := repo.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		purgeCtx, cancel := context.WithCancel(ctx)
		s.stop = cancel
		go purgeExpired(purgeCtx, repo, log)
		s.Sessions = repo
	case "redis":
		if s.redis == nil {
			return nil, fmt.Errorf("redis session store needs REDIS_URL")
		}
		s.Sessions = redis.NewSessionRepository(s.redis, log)
	case "file":
		s.Sessions = file.NewSessionStore(cfg.Session.File)
	default:
		s.Sessions = session.NewMemoryStore()
	}

	return s, nil
}

type expiredPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

func purgeExpired(ctx context.Context, p expiredPurger, log *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := p.PurgeExpired(ctx, now)
			if err != nil {
				log.Warn("Failed to purge expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("Purged expired sessions", zap.Int64("count", n))
			}
		}
	}
}

func (s *stores) Close() {
	if s.stop != nil {
		s.stop()
	}
	if s.db != nil {
		s.db.Close()
	}
	if s.redis != nil {
		s.redis.Close()
	}
}
