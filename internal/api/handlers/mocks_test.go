package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/installment"
	"github.com/phonestore/storefront/internal/payment"
	"github.com/phonestore/storefront/internal/service"
	"github.com/phonestore/storefront/internal/session"
)

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) Suggestions(ctx context.Context, query string) ([]domain.SearchSuggestion, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]domain.SearchSuggestion)
	return items, args.Error(1)
}

func (m *MockCatalog) Products(ctx context.Context, q backend.ProductListQuery) (domain.ProductPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.ProductPage), args.Error(1)
}

func (m *MockCatalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *MockCatalog) Ratings(ctx context.Context, productID string) ([]domain.Rating, error) {
	args := m.Called(ctx, productID)
	r, _ := args.Get(0).([]domain.Rating)
	return r, args.Error(1)
}

func (m *MockCatalog) Rate(ctx context.Context, sess *session.Session, productID string, req service.RatingRequest) (*domain.Rating, error) {
	args := m.Called(ctx, sess, productID, req)
	r, _ := args.Get(0).(*domain.Rating)
	return r, args.Error(1)
}

type MockCart struct{ mock.Mock }

func (m *MockCart) Get(ctx context.Context, sess *session.Session) (*domain.Cart, error) {
	args := m.Called(ctx, sess)
	c, _ := args.Get(0).(*domain.Cart)
	return c, args.Error(1)
}

func (m *MockCart) Add(ctx context.Context, sess *session.Session, req service.AddToCartRequest) (*domain.Cart, error) {
	args := m.Called(ctx, sess, req)
	c, _ := args.Get(0).(*domain.Cart)
	return c, args.Error(1)
}

func (m *MockCart) Update(ctx context.Context, sess *session.Session, itemID string, req service.UpdateCartItemRequest) (*domain.Cart, error) {
	args := m.Called(ctx, sess, itemID, req)
	c, _ := args.Get(0).(*domain.Cart)
	return c, args.Error(1)
}

func (m *MockCart) Remove(ctx context.Context, sess *session.Session, itemID string) (*domain.Cart, error) {
	args := m.Called(ctx, sess, itemID)
	c, _ := args.Get(0).(*domain.Cart)
	return c, args.Error(1)
}

type MockAccount struct{ mock.Mock }

func (m *MockAccount) Login(ctx context.Context, sess *session.Session, req service.LoginRequest) (*domain.User, error) {
	args := m.Called(ctx, sess, req)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockAccount) Register(ctx context.Context, sess *session.Session, req service.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, sess, req)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockAccount) Logout(ctx context.Context, sess *session.Session) error {
	return m.Called(ctx, sess).Error(0)
}

func (m *MockAccount) Profile(ctx context.Context, sess *session.Session) (*domain.User, error) {
	args := m.Called(ctx, sess)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockAccount) UpdateProfile(ctx context.Context, sess *session.Session, req service.ProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, sess, req)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockAccount) ChangePassword(ctx context.Context, sess *session.Session, req service.ChangePasswordRequest) error {
	return m.Called(ctx, sess, req).Error(0)
}

func (m *MockAccount) Addresses(ctx context.Context, sess *session.Session) ([]domain.Address, error) {
	args := m.Called(ctx, sess)
	a, _ := args.Get(0).([]domain.Address)
	return a, args.Error(1)
}

func (m *MockAccount) AddAddress(ctx context.Context, sess *session.Session, req service.AddressRequest) (*domain.Address, error) {
	args := m.Called(ctx, sess, req)
	a, _ := args.Get(0).(*domain.Address)
	return a, args.Error(1)
}

func (m *MockAccount) RemoveAddress(ctx context.Context, sess *session.Session, id string) error {
	return m.Called(ctx, sess, id).Error(0)
}

func (m *MockAccount) SetDefaultAddress(ctx context.Context, sess *session.Session, id string) error {
	return m.Called(ctx, sess, id).Error(0)
}

type MockOrders struct{ mock.Mock }

func (m *MockOrders) PrepareCheckout(ctx context.Context, sess *session.Session) (*service.CheckoutSummary, error) {
	args := m.Called(ctx, sess)
	s, _ := args.Get(0).(*service.CheckoutSummary)
	return s, args.Error(1)
}

func (m *MockOrders) PlaceOrder(ctx context.Context, sess *session.Session, req service.CheckoutRequest) (*service.CheckoutResult, error) {
	args := m.Called(ctx, sess, req)
	r, _ := args.Get(0).(*service.CheckoutResult)
	return r, args.Error(1)
}

func (m *MockOrders) Orders(ctx context.Context, sess *session.Session) ([]domain.Order, error) {
	args := m.Called(ctx, sess)
	o, _ := args.Get(0).([]domain.Order)
	return o, args.Error(1)
}

func (m *MockOrders) Order(ctx context.Context, sess *session.Session, orderCode string) (*domain.Order, error) {
	args := m.Called(ctx, sess, orderCode)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

type MockPayments struct{ mock.Mock }

func (m *MockPayments) Status(ctx context.Context, sess *session.Session, orderCode string) (*domain.PaymentStatus, error) {
	args := m.Called(ctx, sess, orderCode)
	s, _ := args.Get(0).(*domain.PaymentStatus)
	return s, args.Error(1)
}

func (m *MockPayments) Await(ctx context.Context, sess *session.Session, orderCode string, onUpdate func(payment.Snapshot)) payment.Snapshot {
	args := m.Called(ctx, sess, orderCode)
	return args.Get(0).(payment.Snapshot)
}

type MockInstallments struct{ mock.Mock }

func (m *MockInstallments) Plans(ctx context.Context, finalPrice int64) ([]domain.InstallmentPlan, error) {
	args := m.Called(ctx, finalPrice)
	p, _ := args.Get(0).([]domain.InstallmentPlan)
	return p, args.Error(1)
}

func (m *MockInstallments) Quote(ctx context.Context, req service.QuoteRequest) (*installment.Quote, error) {
	args := m.Called(ctx, req)
	q, _ := args.Get(0).(*installment.Quote)
	return q, args.Error(1)
}

func (m *MockInstallments) Apply(ctx context.Context, sess *session.Session, req service.ApplicationRequest) (*domain.InstallmentApplication, error) {
	args := m.Called(ctx, sess, req)
	a, _ := args.Get(0).(*domain.InstallmentApplication)
	return a, args.Error(1)
}

type MockIdentity struct{ mock.Mock }

func (m *MockIdentity) Verify(ctx context.Context, sess *session.Session, front, back service.IdentityPhoto) (*domain.IdentityData, error) {
	args := m.Called(ctx, sess, front, back)
	d, _ := args.Get(0).(*domain.IdentityData)
	return d, args.Error(1)
}

var (
	_ CatalogService     = (*MockCatalog)(nil)
	_ CartService        = (*MockCart)(nil)
	_ AccountService     = (*MockAccount)(nil)
	_ OrderService       = (*MockOrders)(nil)
	_ PaymentService     = (*MockPayments)(nil)
	_ InstallmentService = (*MockInstallments)(nil)
	_ IdentityService    = (*MockIdentity)(nil)
)
