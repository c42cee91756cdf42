package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/search"
	"github.com/phonestore/storefront/internal/service"
)

// SuggestionItem is a suggestion with the path it navigates to
type SuggestionItem struct {
	domain.SearchSuggestion
	Path string `json:"path"`
}

// ViewAllLink is the trailing "view all results" entry
type ViewAllLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// SuggestionsResponse is the dropdown payload
type SuggestionsResponse struct {
	Query   string           `json:"query"`
	Items   []SuggestionItem `json:"items"`
	ViewAll *ViewAllLink     `json:"viewAll,omitempty"`
}

// HandleSearchSuggestions handles GET /v1/search/suggestions?q=. A failed
// search answers an empty list, never an error status.
func HandleSearchSuggestions(svc CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))

		items, err := svc.Suggestions(c.Request.Context(), query)
		if err != nil {
			logger.Warn("Search suggestions failed", zap.String("query", query), zap.Error(err))
			items = nil
		}

		resp := SuggestionsResponse{
			Query: query,
			Items: make([]SuggestionItem, 0, len(items)),
		}
		for _, s := range items {
			resp.Items = append(resp.Items, SuggestionItem{SearchSuggestion: s, Path: search.ProductPath(s.ID)})
		}
		if len(items) > 0 {
			resp.ViewAll = &ViewAllLink{Label: search.ViewAllLabel(query), Path: search.SearchPath(query)}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(svc CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := queryInt64(c, "page")
		if !ok {
			return
		}
		size, ok := queryInt64(c, "size")
		if !ok {
			return
		}
		minPrice, ok := queryInt64(c, "minPrice")
		if !ok {
			return
		}
		maxPrice, ok := queryInt64(c, "maxPrice")
		if !ok {
			return
		}

		result, err := svc.Products(c.Request.Context(), backend.ProductListQuery{
			Page:     int(page),
			Size:     int(size),
			Brand:    c.Query("brand"),
			Sort:     c.Query("sort"),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
		})
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(svc CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Product(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleListRatings handles GET /v1/products/:id/ratings
func HandleListRatings(svc CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ratings, err := svc.Ratings(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": ratings})
	}
}

// HandleSubmitRating handles POST /v1/products/:id/ratings
func HandleSubmitRating(svc CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.RatingRequest
		if !bindJSON(c, &req) {
			return
		}

		rating, err := svc.Rate(c.Request.Context(), sess, c.Param("id"), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, rating)
	}
}
