package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/config"
	"github.com/phonestore/storefront/internal/domain"
)

func TestCatalogService_SuggestionsUsesCache(t *testing.T) {
	ctx := context.Background()
	items := []domain.SearchSuggestion{{ID: "1", Name: "iPhone 15", Image: "/no-image.png"}}

	t.Run("Hit", func(t *testing.T) {
		mockBackend := new(MockBackend)
		mockCache := new(MockCache)
		svc := NewCatalogService(mockBackend, mockCache, config.SearchConfig{SuggestionLimit: 6}, nil, zap.NewNop())
		mockCache.On("GetSuggestions", ctx, "iphone").Return(items, true, nil).Once()

		got, err := svc.Suggestions(ctx, " iPhone ")

		require.NoError(t, err)
		assert.Equal(t, items, got)
		mockBackend.AssertNotCalled(t, "SearchProductsByName", mock.Anything, mock.Anything)
	})

	t.Run("Miss", func(t *testing.T) {
		mockBackend := new(MockBackend)
		mockCache := new(MockCache)
		svc := NewCatalogService(mockBackend, mockCache, config.SearchConfig{SuggestionLimit: 6}, nil, zap.NewNop())
		mockCache.On("GetSuggestions", ctx, "iphone").Return(nil, false, nil).Once()
		mockBackend.On("SearchProductsByName", ctx, backend.SearchQuery{Name: "iPhone", Limit: 6}).Return(items, nil).Once()
		mockCache.On("SetSuggestions", ctx, "iphone", items).Return(nil).Once()

		got, err := svc.Suggestions(ctx, "iPhone")

		require.NoError(t, err)
		assert.Equal(t, items, got)
		mockBackend.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("CacheErrorFallsThrough", func(t *testing.T) {
		mockBackend := new(MockBackend)
		mockCache := new(MockCache)
		svc := NewCatalogService(mockBackend, mockCache, config.SearchConfig{}, nil, zap.NewNop())
		mockCache.On("GetSuggestions", ctx, "pixel").Return(nil, false, errors.New("redis down")).Once()
		mockBackend.On("SearchProductsByName", ctx, backend.SearchQuery{Name: "pixel", Limit: backend.DefaultSuggestionLimit}).Return(items, nil).Once()
		mockCache.On("SetSuggestions", ctx, "pixel", items).Return(errors.New("redis down")).Once()

		got, err := svc.Suggestions(ctx, "pixel")

		require.NoError(t, err)
		assert.Equal(t, items, got)
	})
}

func TestCatalogService_EmptyQuery(t *testing.T) {
	mockBackend := new(MockBackend)
	svc := NewCatalogService(mockBackend, nil, config.SearchConfig{}, nil, zap.NewNop())

	got, err := svc.Suggestions(context.Background(), "   ")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	mockBackend.AssertNotCalled(t, "SearchProductsByName", mock.Anything, mock.Anything)
}

func TestCatalogService_RateValidates(t *testing.T) {
	mockBackend := new(MockBackend)
	svc := NewCatalogService(mockBackend, nil, config.SearchConfig{}, nil, zap.NewNop())

	_, err := svc.Rate(context.Background(), testSession(), "p1", RatingRequest{Stars: 6})

	assert.Error(t, err)
	mockBackend.AssertNotCalled(t, "SubmitRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
