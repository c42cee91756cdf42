package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

// SearchProductsByName calls the search endpoint and normalizes whatever
// shape it answers with. An empty name returns no suggestions without a call.
func (c *Client) SearchProductsByName(ctx context.Context, q SearchQuery) ([]domain.SearchSuggestion, error) {
	name := strings.TrimSpace(q.Name)
	if name == "" {
		return []domain.SearchSuggestion{}, nil
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	query := url.Values{}
	query.Set("name", name)
	query.Set("limit", strconv.Itoa(limit))

	raw, err := c.execute(ctx, request{
		method:   http.MethodGet,
		path:     pathProductSearch,
		query:    query,
		resource: "product",
	})
	if err != nil {
		return nil, err
	}
	return NormalizeSuggestions(raw, limit, c.placeholder), nil
}

// ListProducts returns one normalized catalog page
func (c *Client) ListProducts(ctx context.Context, q ProductListQuery) (domain.ProductPage, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		query.Set("size", strconv.Itoa(q.Size))
	}
	if q.Brand != "" {
		query.Set("brand", q.Brand)
	}
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}
	if q.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatInt(q.MinPrice, 10))
	}
	if q.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatInt(q.MaxPrice, 10))
	}

	raw, err := c.execute(ctx, request{
		method: http.MethodGet,
		path:   pathProducts,
		query:  query,
	})
	if err != nil {
		return domain.ProductPage{}, err
	}
	return NormalizeProductPage(raw, c.placeholder), nil
}

// GetProduct returns a normalized product detail
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := c.execute(ctx, request{
		method:   http.MethodGet,
		path:     fmt.Sprintf(pathProduct, url.PathEscape(id)),
		resource: "product",
	})
	if err != nil {
		return nil, err
	}

	obj, ok := decodeObject(raw)
	if !ok {
		return nil, &apperrors.ErrUpstream{Status: http.StatusOK, Body: truncate(string(raw), 512)}
	}
	// some endpoints wrap the detail in {result: {...}}
	if inner, ok := obj["result"].(map[string]any); ok {
		obj = inner
	}

	p, ok := NormalizeProduct(obj, c.placeholder)
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "product", ID: id}
	}
	return &p, nil
}

// ListRatings returns the reviews of a product
func (c *Client) ListRatings(ctx context.Context, productID string) ([]domain.Rating, error) {
	var ratings []domain.Rating
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     fmt.Sprintf(pathRatings, url.PathEscape(productID)),
		resource: "product",
	}, &ratings)
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// SubmitRating posts a review as the session user
func (c *Client) SubmitRating(ctx context.Context, sess *session.Session, productID string, in RatingInput) (*domain.Rating, error) {
	if !sess.Authenticated() {
		return nil, &apperrors.ErrUnauthorized{Message: "login required to rate products"}
	}

	var rating domain.Rating
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     fmt.Sprintf(pathRatings, url.PathEscape(productID)),
		session:  sess,
		body:     in,
		resource: "product",
	}, &rating)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
