package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
	"github.com/phonestore/storefront/pkg/validate"
)

type cartService struct {
	backend CartBackend
	logger  *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(b CartBackend, logger *zap.Logger) *cartService {
	return &cartService{
		backend: b,
		logger:  logger,
	}
}

// Get returns the session's cart
func (s *cartService) Get(ctx context.Context, sess *session.Session) (*domain.Cart, error) {
	return s.backend.GetCart(ctx, sess)
}

// Add puts a product variant into the cart and returns the re-fetched cart
func (s *cartService) Add(ctx context.Context, sess *session.Session, req AddToCartRequest) (*domain.Cart, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	err := s.backend.AddCartItem(ctx, sess, backend.CartItemInput{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Cart item added",
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)
	return s.backend.GetCart(ctx, sess)
}

// Update changes an item quantity and returns the re-fetched cart
func (s *cartService) Update(ctx context.Context, sess *session.Session, itemID string, req UpdateCartItemRequest) (*domain.Cart, error) {
	if itemID == "" {
		return nil, &apperrors.ErrValidation{Message: "cart item id is required"}
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.backend.UpdateCartItem(ctx, sess, itemID, req.Quantity); err != nil {
		return nil, err
	}
	return s.backend.GetCart(ctx, sess)
}

// Remove deletes an item and returns the re-fetched cart
func (s *cartService) Remove(ctx context.Context, sess *session.Session, itemID string) (*domain.Cart, error) {
	if itemID == "" {
		return nil, &apperrors.ErrValidation{Message: "cart item id is required"}
	}
	if err := s.backend.RemoveCartItem(ctx, sess, itemID); err != nil {
		return nil, err
	}
	return s.backend.GetCart(ctx, sess)
}
