package handlers

import (
	"context"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/installment"
	"github.com/phonestore/storefront/internal/payment"
	"github.com/phonestore/storefront/internal/service"
	"github.com/phonestore/storefront/internal/session"
)

type CatalogService interface {
	Suggestions(ctx context.Context, query string) ([]domain.SearchSuggestion, error)
	Products(ctx context.Context, q backend.ProductListQuery) (domain.ProductPage, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	Ratings(ctx context.Context, productID string) ([]domain.Rating, error)
	Rate(ctx context.Context, sess *session.Session, productID string, req service.RatingRequest) (*domain.Rating, error)
}

type CartService interface {
	Get(ctx context.Context, sess *session.Session) (*domain.Cart, error)
	Add(ctx context.Context, sess *session.Session, req service.AddToCartRequest) (*domain.Cart, error)
	Update(ctx context.Context, sess *session.Session, itemID string, req service.UpdateCartItemRequest) (*domain.Cart, error)
	Remove(ctx context.Context, sess *session.Session, itemID string) (*domain.Cart, error)
}

type AccountService interface {
	Login(ctx context.Context, sess *session.Session, req service.LoginRequest) (*domain.User, error)
	Register(ctx context.Context, sess *session.Session, req service.RegisterRequest) (*domain.User, error)
	Logout(ctx context.Context, sess *session.Session) error
	Profile(ctx context.Context, sess *session.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, sess *session.Session, req service.ProfileRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, sess *session.Session, req service.ChangePasswordRequest) error
	Addresses(ctx context.Context, sess *session.Session) ([]domain.Address, error)
	AddAddress(ctx context.Context, sess *session.Session, req service.AddressRequest) (*domain.Address, error)
	RemoveAddress(ctx context.Context, sess *session.Session, id string) error
	SetDefaultAddress(ctx context.Context, sess *session.Session, id string) error
}

type OrderService interface {
	PrepareCheckout(ctx context.Context, sess *session.Session) (*service.CheckoutSummary, error)
	PlaceOrder(ctx context.Context, sess *session.Session, req service.CheckoutRequest) (*service.CheckoutResult, error)
	Orders(ctx context.Context, sess *session.Session) ([]domain.Order, error)
	Order(ctx context.Context, sess *session.Session, orderCode string) (*domain.Order, error)
}

type PaymentService interface {
	Status(ctx context.Context, sess *session.Session, orderCode string) (*domain.PaymentStatus, error)
	Await(ctx context.Context, sess *session.Session, orderCode string, onUpdate func(payment.Snapshot)) payment.Snapshot
}

type InstallmentService interface {
	Plans(ctx context.Context, finalPrice int64) ([]domain.InstallmentPlan, error)
	Quote(ctx context.Context, req service.QuoteRequest) (*installment.Quote, error)
	Apply(ctx context.Context, sess *session.Session, req service.ApplicationRequest) (*domain.InstallmentApplication, error)
}

type IdentityService interface {
	Verify(ctx context.Context, sess *session.Session, front, back service.IdentityPhoto) (*domain.IdentityData, error)
}

// Deps bundles the services the router wires into handlers
type Deps struct {
	Catalog          CatalogService
	Cart             CartService
	Account          AccountService
	Orders           OrderService
	Payments         PaymentService
	Installments     InstallmentService
	Identity         IdentityService
	IdentityMaxBytes int64
}
