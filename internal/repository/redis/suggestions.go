package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phonestore/storefront/internal/domain"
)

const suggestionPrefix = "storefront:suggest:"

// SuggestionCache keeps normalized suggestion lists for a short time so
// repeated keystrokes from many visitors hit the backend once.
type SuggestionCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewSuggestionCache(client goredis.Cmdable, ttl time.Duration) *SuggestionCache {
	return &SuggestionCache{client: client, ttl: ttl}
}

// GetSuggestions reports false on a miss
func (c *SuggestionCache) GetSuggestions(ctx context.Context, query string) ([]domain.SearchSuggestion, bool, error) {
	raw, err := c.client.Get(ctx, suggestionPrefix+query).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []domain.SearchSuggestion
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode suggestions: %w", err)
	}
	if items == nil {
		items = []domain.SearchSuggestion{}
	}
	return items, true, nil
}

func (c *SuggestionCache) SetSuggestions(ctx context.Context, query string, items []domain.SearchSuggestion) error {
	if items == nil {
		items = []domain.SearchSuggestion{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}
	return c.client.Set(ctx, suggestionPrefix+query, raw, c.ttl).Err()
}
