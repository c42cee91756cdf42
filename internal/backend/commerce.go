package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

// GetCart returns the cart owned by the session token or guest cart key
func (c *Client) GetCart(ctx context.Context, sess *session.Session) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, request{method: http.MethodGet, path: pathCart, session: sess, resource: "cart"}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds a product line
func (c *Client) AddCartItem(ctx context.Context, sess *session.Session, in CartItemInput) error {
	return c.do(ctx, request{method: http.MethodPost, path: pathCartItems, session: sess, body: in, resource: "product"}, nil)
}

// UpdateCartItem sets the quantity of a line
func (c *Client) UpdateCartItem(ctx context.Context, sess *session.Session, itemID string, quantity int) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		path:     fmt.Sprintf(pathCartItem, url.PathEscape(itemID)),
		session:  sess,
		body:     map[string]int{"quantity": quantity},
		resource: "cart item",
	}, nil)
}

// RemoveCartItem deletes a line
func (c *Client) RemoveCartItem(ctx context.Context, sess *session.Session, itemID string) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     fmt.Sprintf(pathCartItem, url.PathEscape(itemID)),
		session:  sess,
		resource: "cart item",
	}, nil)
}

// CreateOrder places an order from the session cart
func (c *Client) CreateOrder(ctx context.Context, sess *session.Session, in OrderInput) (*domain.Order, error) {
	if !sess.Authenticated() {
		return nil, &apperrors.ErrUnauthorized{Message: "login required to place orders"}
	}
	var order domain.Order
	if err := c.do(ctx, request{method: http.MethodPost, path: pathOrders, session: sess, body: in}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder loads an order by its code
func (c *Client) GetOrder(ctx context.Context, sess *session.Session, orderCode string) (*domain.Order, error) {
	if !sess.Authenticated() {
		return nil, &apperrors.ErrUnauthorized{}
	}
	var order domain.Order
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     fmt.Sprintf(pathOrder, url.PathEscape(orderCode)),
		session:  sess,
		resource: "order",
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the order history of the session user
func (c *Client) ListOrders(ctx context.Context, sess *session.Session) ([]domain.Order, error) {
	if !sess.Authenticated() {
		return nil, &apperrors.ErrUnauthorized{}
	}
	var orders []domain.Order
	if err := c.do(ctx, request{method: http.MethodGet, path: pathOrders, session: sess}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreatePaymentIntent asks the backend for a provider checkout URL
func (c *Client) CreatePaymentIntent(ctx context.Context, sess *session.Session, in PaymentIntentInput) (*domain.PaymentIntent, error) {
	if !sess.Authenticated() {
		return nil, &apperrors.ErrUnauthorized{}
	}
	var intent domain.PaymentIntent
	err := c.do(ctx, request{method: http.MethodPost, path: pathPaymentIntents, session: sess, body: in, resource: "order"}, &intent)
	if err != nil {
		return nil, err
	}
	if intent.OrderCode == "" {
		intent.OrderCode = in.OrderCode
	}
	return &intent, nil
}

// GetPaymentStatus returns the backend status of an order payment. An
// unknown status string is reported as PENDING so polling continues.
func (c *Client) GetPaymentStatus(ctx context.Context, sess *session.Session, orderCode string) (*domain.PaymentStatus, error) {
	orderCode = strings.TrimSpace(orderCode)
	if orderCode == "" {
		return nil, &apperrors.ErrValidation{Message: "order code is required"}
	}

	raw, err := c.execute(ctx, request{
		method:   http.MethodGet,
		path:     fmt.Sprintf(pathPaymentStatus, url.PathEscape(orderCode)),
		session:  sess,
		resource: "payment",
	})
	if err != nil {
		return nil, err
	}
	body := map[string]any{}
	if strings.TrimSpace(string(raw)) != "" {
		var ok bool
		if body, ok = decodeObject(raw); !ok {
			return nil, &apperrors.ErrUpstream{Status: http.StatusOK, Body: truncate(string(raw), 512)}
		}
	}

	status, _ := stringField(body, "status")
	state, ok := domain.ParseBackendPaymentStatus(strings.ToUpper(status))
	if !ok {
		state = domain.PaymentStatePending
	}

	out := &domain.PaymentStatus{Status: state}
	if amount, ok := int64Field(body, "amount"); ok {
		out.Amount = &amount
	}
	if id, ok := idField(body, "providerPaymentId"); ok {
		out.ProviderPaymentID = &id
	}
	return out, nil
}
