package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	"github.com/phonestore/storefront/pkg/errors"
	"github.com/phonestore/storefront/pkg/validate"
)

type orderService struct {
	backend OrderBackend
	logger  *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(b OrderBackend, logger *zap.Logger) *orderService {
	return &orderService{
		backend: b,
		logger:  logger,
	}
}

// PrepareCheckout loads the cart and saved addresses and preselects the
// default address, or the first one when none is marked default.
func (s *orderService) PrepareCheckout(ctx context.Context, sess *session.Session) (*CheckoutSummary, error) {
	cart, err := s.backend.GetCart(ctx, sess)
	if err != nil {
		return nil, err
	}
	addresses, err := s.backend.ListAddresses(ctx, sess)
	if err != nil {
		return nil, err
	}

	return &CheckoutSummary{
		Cart:              cart,
		Addresses:         addresses,
		SelectedAddressID: defaultAddressID(addresses),
	}, nil
}

// PlaceOrder creates an order from the current cart. ONLINE orders also get a
// payment intent whose checkout URL the client redirects to before polling.
func (s *orderService) PlaceOrder(ctx context.Context, sess *session.Session, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	summary, err := s.PrepareCheckout(ctx, sess)
	if err != nil {
		return nil, err
	}
	if summary.Cart == nil || len(summary.Cart.Items) == 0 {
		return nil, &errors.ErrValidation{Message: "cart is empty"}
	}

	addressID := strings.TrimSpace(req.AddressID)
	if addressID == "" {
		addressID = summary.SelectedAddressID
	}
	if !hasAddress(summary.Addresses, addressID) {
		return nil, &errors.ErrValidation{
			Message: "shipping address is required",
			Fields:  map[string]string{"addressId": "must be one of your saved addresses"},
		}
	}

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	order, err := s.backend.CreateOrder(ctx, sess, backend.OrderInput{
		AddressID:      addressID,
		PaymentMethod:  req.PaymentMethod,
		Note:           strings.TrimSpace(req.Note),
		IdempotencyKey: key,
	})
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{Order: order, OrderCode: order.OrderCode}
	s.logger.Info("Order placed",
		zap.String("order_code", order.OrderCode),
		zap.String("payment_method", string(req.PaymentMethod)),
		zap.Int64("total", order.Total),
	)

	if !req.PaymentMethod.RequiresPaymentIntent() {
		return result, nil
	}

	intent, err := s.backend.CreatePaymentIntent(ctx, sess, backend.PaymentIntentInput{
		OrderCode: order.OrderCode,
		ReturnURL: req.ReturnURL,
	})
	if err != nil {
		// The order exists; the client can retry payment from the order page.
		s.logger.Error("Failed to create payment intent",
			zap.String("order_code", order.OrderCode),
			zap.Error(err),
		)
		return result, err
	}
	result.CheckoutURL = intent.CheckoutURL
	return result, nil
}

// Orders lists the user's orders
func (s *orderService) Orders(ctx context.Context, sess *session.Session) ([]domain.Order, error) {
	return s.backend.ListOrders(ctx, sess)
}

// Order returns one order by its code
func (s *orderService) Order(ctx context.Context, sess *session.Session, orderCode string) (*domain.Order, error) {
	return s.backend.GetOrder(ctx, sess, strings.TrimSpace(orderCode))
}

func defaultAddressID(addresses []domain.Address) string {
	for _, a := range addresses {
		if a.IsDefault {
			return a.ID
		}
	}
	if len(addresses) > 0 {
		return addresses[0].ID
	}
	return ""
}

func hasAddress(addresses []domain.Address, id string) bool {
	if id == "" {
		return false
	}
	for _, a := range addresses {
		if a.ID == id {
			return true
		}
	}
	return false
}
