package service

import (
	"context"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
)

// CatalogBackend is the product part of the REST backend
type CatalogBackend interface {
	SearchProductsByName(ctx context.Context, q backend.SearchQuery) ([]domain.SearchSuggestion, error)
	ListProducts(ctx context.Context, q backend.ProductListQuery) (domain.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListRatings(ctx context.Context, productID string) ([]domain.Rating, error)
	SubmitRating(ctx context.Context, sess *session.Session, productID string, in backend.RatingInput) (*domain.Rating, error)
}

// CartBackend is the cart part of the REST backend
type CartBackend interface {
	GetCart(ctx context.Context, sess *session.Session) (*domain.Cart, error)
	AddCartItem(ctx context.Context, sess *session.Session, in backend.CartItemInput) error
	UpdateCartItem(ctx context.Context, sess *session.Session, itemID string, quantity int) error
	RemoveCartItem(ctx context.Context, sess *session.Session, itemID string) error
}

// AccountBackend covers authentication, profile and addresses
type AccountBackend interface {
	Login(ctx context.Context, in backend.LoginInput) (*backend.AuthResult, error)
	Register(ctx context.Context, in backend.RegisterInput) (*backend.AuthResult, error)
	GetProfile(ctx context.Context, sess *session.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, sess *session.Session, in backend.ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, sess *session.Session, in backend.ChangePasswordInput) error
	ListAddresses(ctx context.Context, sess *session.Session) ([]domain.Address, error)
	CreateAddress(ctx context.Context, sess *session.Session, in backend.AddressInput) (*domain.Address, error)
	DeleteAddress(ctx context.Context, sess *session.Session, id string) error
	SetDefaultAddress(ctx context.Context, sess *session.Session, id string) error
}

// OrderBackend covers orders and payment intents
type OrderBackend interface {
	CartBackend
	ListAddresses(ctx context.Context, sess *session.Session) ([]domain.Address, error)
	CreateOrder(ctx context.Context, sess *session.Session, in backend.OrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, sess *session.Session, orderCode string) (*domain.Order, error)
	ListOrders(ctx context.Context, sess *session.Session) ([]domain.Order, error)
	CreatePaymentIntent(ctx context.Context, sess *session.Session, in backend.PaymentIntentInput) (*domain.PaymentIntent, error)
}

// InstallmentBackend covers plans and applications
type InstallmentBackend interface {
	GetPlans(ctx context.Context) ([]domain.InstallmentPlan, error)
	PrecheckApplication(ctx context.Context, sess *session.Session, in backend.ApplicationInput) (*domain.EligibilityResult, error)
	CreateApplication(ctx context.Context, sess *session.Session, in backend.ApplicationInput) (*domain.InstallmentApplication, error)
}

// SuggestionCache stores normalized suggestion lists by query
type SuggestionCache interface {
	GetSuggestions(ctx context.Context, query string) ([]domain.SearchSuggestion, bool, error)
	SetSuggestions(ctx context.Context, query string, items []domain.SearchSuggestion) error
}
