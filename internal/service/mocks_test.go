package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
)

// --- Mock for the REST backend ---

type MockBackend struct{ mock.Mock }

func (m *MockBackend) SearchProductsByName(ctx context.Context, q backend.SearchQuery) ([]domain.SearchSuggestion, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchSuggestion), args.Error(1)
}

func (m *MockBackend) ListProducts(ctx context.Context, q backend.ProductListQuery) (domain.ProductPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.ProductPage), args.Error(1)
}

func (m *MockBackend) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockBackend) ListRatings(ctx context.Context, productID string) ([]domain.Rating, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rating), args.Error(1)
}

func (m *MockBackend) SubmitRating(ctx context.Context, sess *session.Session, productID string, in backend.RatingInput) (*domain.Rating, error) {
	args := m.Called(ctx, sess, productID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *MockBackend) GetCart(ctx context.Context, sess *session.Session) (*domain.Cart, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockBackend) AddCartItem(ctx context.Context, sess *session.Session, in backend.CartItemInput) error {
	return m.Called(ctx, sess, in).Error(0)
}

func (m *MockBackend) UpdateCartItem(ctx context.Context, sess *session.Session, itemID string, quantity int) error {
	return m.Called(ctx, sess, itemID, quantity).Error(0)
}

func (m *MockBackend) RemoveCartItem(ctx context.Context, sess *session.Session, itemID string) error {
	return m.Called(ctx, sess, itemID).Error(0)
}

func (m *MockBackend) Login(ctx context.Context, in backend.LoginInput) (*backend.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.AuthResult), args.Error(1)
}

func (m *MockBackend) Register(ctx context.Context, in backend.RegisterInput) (*backend.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.AuthResult), args.Error(1)
}

func (m *MockBackend) GetProfile(ctx context.Context, sess *session.Session) (*domain.User, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockBackend) UpdateProfile(ctx context.Context, sess *session.Session, in backend.ProfileInput) (*domain.User, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockBackend) ChangePassword(ctx context.Context, sess *session.Session, in backend.ChangePasswordInput) error {
	return m.Called(ctx, sess, in).Error(0)
}

func (m *MockBackend) ListAddresses(ctx context.Context, sess *session.Session) ([]domain.Address, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *MockBackend) CreateAddress(ctx context.Context, sess *session.Session, in backend.AddressInput) (*domain.Address, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *MockBackend) DeleteAddress(ctx context.Context, sess *session.Session, id string) error {
	return m.Called(ctx, sess, id).Error(0)
}

func (m *MockBackend) SetDefaultAddress(ctx context.Context, sess *session.Session, id string) error {
	return m.Called(ctx, sess, id).Error(0)
}

func (m *MockBackend) CreateOrder(ctx context.Context, sess *session.Session, in backend.OrderInput) (*domain.Order, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockBackend) GetOrder(ctx context.Context, sess *session.Session, orderCode string) (*domain.Order, error) {
	args := m.Called(ctx, sess, orderCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockBackend) ListOrders(ctx context.Context, sess *session.Session) ([]domain.Order, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockBackend) CreatePaymentIntent(ctx context.Context, sess *session.Session, in backend.PaymentIntentInput) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentIntent), args.Error(1)
}

func (m *MockBackend) GetPaymentStatus(ctx context.Context, sess *session.Session, orderCode string) (*domain.PaymentStatus, error) {
	args := m.Called(ctx, sess, orderCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentStatus), args.Error(1)
}

func (m *MockBackend) GetPlans(ctx context.Context) ([]domain.InstallmentPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InstallmentPlan), args.Error(1)
}

func (m *MockBackend) PrecheckApplication(ctx context.Context, sess *session.Session, in backend.ApplicationInput) (*domain.EligibilityResult, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EligibilityResult), args.Error(1)
}

func (m *MockBackend) CreateApplication(ctx context.Context, sess *session.Session, in backend.ApplicationInput) (*domain.InstallmentApplication, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentApplication), args.Error(1)
}

func (m *MockBackend) UploadIdentityDocuments(ctx context.Context, sess *session.Session, in backend.IdentityUpload) (*domain.IdentityData, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IdentityData), args.Error(1)
}

// --- Mock for the suggestion cache ---

type MockCache struct{ mock.Mock }

func (m *MockCache) GetSuggestions(ctx context.Context, query string) ([]domain.SearchSuggestion, bool, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.SearchSuggestion), args.Bool(1), args.Error(2)
}

func (m *MockCache) SetSuggestions(ctx context.Context, query string, items []domain.SearchSuggestion) error {
	return m.Called(ctx, query, items).Error(0)
}

var (
	_ CatalogBackend     = (*MockBackend)(nil)
	_ AccountBackend     = (*MockBackend)(nil)
	_ OrderBackend       = (*MockBackend)(nil)
	_ InstallmentBackend = (*MockBackend)(nil)
	_ SuggestionCache    = (*MockCache)(nil)
)
