package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/config"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/metrics"
	"github.com/phonestore/storefront/internal/session"
	"github.com/phonestore/storefront/pkg/validate"
)

type catalogService struct {
	backend CatalogBackend
	cache   SuggestionCache
	limit   int
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCatalogService creates a new catalog service. cache may be nil.
func NewCatalogService(b CatalogBackend, cache SuggestionCache, cfg config.SearchConfig, m *metrics.Metrics, logger *zap.Logger) *catalogService {
	limit := cfg.SuggestionLimit
	if limit <= 0 {
		limit = backend.DefaultSuggestionLimit
	}
	return &catalogService{
		backend: b,
		cache:   cache,
		limit:   limit,
		metrics: m,
		logger:  logger,
	}
}

// Suggestions returns normalized suggestions for a typed query. Cache
// failures are logged and fall through to the backend.
func (s *catalogService) Suggestions(ctx context.Context, query string) ([]domain.SearchSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchSuggestion{}, nil
	}
	key := strings.ToLower(query)

	if s.cache != nil {
		items, ok, err := s.cache.GetSuggestions(ctx, key)
		switch {
		case err != nil:
			s.metrics.CacheError()
			s.logger.Warn("Suggestion cache read failed", zap.String("query", query), zap.Error(err))
		case ok:
			s.metrics.CacheHit()
			return items, nil
		default:
			s.metrics.CacheMiss()
		}
	}

	items, err := s.backend.SearchProductsByName(ctx, backend.SearchQuery{Name: query, Limit: s.limit})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSuggestions(ctx, key, items); err != nil {
			s.metrics.CacheError()
			s.logger.Warn("Suggestion cache write failed", zap.String("query", query), zap.Error(err))
		}
	}
	return items, nil
}

// Products lists a catalog page
func (s *catalogService) Products(ctx context.Context, q backend.ProductListQuery) (domain.ProductPage, error) {
	return s.backend.ListProducts(ctx, q)
}

// Product returns one product with its variants
func (s *catalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	return s.backend.GetProduct(ctx, strings.TrimSpace(id))
}

// Ratings lists a product's reviews
func (s *catalogService) Ratings(ctx context.Context, productID string) ([]domain.Rating, error) {
	return s.backend.ListRatings(ctx, productID)
}

// Rate submits a review for a product
func (s *catalogService) Rate(ctx context.Context, sess *session.Session, productID string, req RatingRequest) (*domain.Rating, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return s.backend.SubmitRating(ctx, sess, productID, backend.RatingInput{
		Stars:   req.Stars,
		Comment: strings.TrimSpace(req.Comment),
	})
}
