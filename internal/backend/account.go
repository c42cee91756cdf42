package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

// Login exchanges credentials for a backend token
func (c *Client) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, request{method: http.MethodPost, path: pathLogin, body: in}, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &apperrors.ErrUnauthorized{Message: "backend returned no token"}
	}
	return &result, nil
}

// Register creates an account and returns its token
func (c *Client) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, request{method: http.MethodPost, path: pathRegister, body: in}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProfile loads the account of the session
func (c *Client) GetProfile(ctx context.Context, sess *session.Session) (*domain.User, error) {
	if !sess.Authenticated() {
		return nil, &apperrors.ErrUnauthorized{}
	}
	var user domain.User
	if err := c.do(ctx, request{method: http.MethodGet, path: pathProfile, session: sess, resource: "user"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes name, phone and birth date
func (c *Client) UpdateProfile(ctx context.Context, sess *session.Session, in ProfileInput) (*domain.User, error) {
	if !sess.Authenticated() {
		return nil, &apperrors.ErrUnauthorized{}
	}
	var user domain.User
	if err := c.do(ctx, request{method: http.MethodPut, path: pathProfile, session: sess, body: in, resource: "user"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the account password
func (c *Client) ChangePassword(ctx context.Context, sess *session.Session, in ChangePasswordInput) error {
	if !sess.Authenticated() {
		return &apperrors.ErrUnauthorized{}
	}
	return c.do(ctx, request{method: http.MethodPut, path: pathChangePassword, session: sess, body: in}, nil)
}

// ListAddresses returns the saved shipping addresses
func (c *Client) ListAddresses(ctx context.Context, sess *session.Session) ([]domain.Address, error) {
	if !sess.Authenticated() {
		return nil, &apperrors.ErrUnauthorized{}
	}
	var addresses []domain.Address
	if err := c.do(ctx, request{method: http.MethodGet, path: pathAddresses, session: sess}, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress saves a new shipping address
func (c *Client) CreateAddress(ctx context.Context, sess *session.Session, in AddressInput) (*domain.Address, error) {
	if !sess.Authenticated() {
		return nil, &apperrors.ErrUnauthorized{}
	}
	var address domain.Address
	if err := c.do(ctx, request{method: http.MethodPost, path: pathAddresses, session: sess, body: in}, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

// DeleteAddress removes a shipping address
func (c *Client) DeleteAddress(ctx context.Context, sess *session.Session, id string) error {
	if !sess.Authenticated() {
		return &apperrors.ErrUnauthorized{}
	}
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     fmt.Sprintf(pathAddress, url.PathEscape(id)),
		session:  sess,
		resource: "address",
	}, nil)
}

// SetDefaultAddress marks an address as the default one
func (c *Client) SetDefaultAddress(ctx context.Context, sess *session.Session, id string) error {
	if !sess.Authenticated() {
		return &apperrors.ErrUnauthorized{}
	}
	return c.do(ctx, request{
		method:   http.MethodPut,
		path:     fmt.Sprintf(pathAddressDefault, url.PathEscape(id)),
		session:  sess,
		resource: "address",
	}, nil)
}
