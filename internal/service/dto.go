package service

import (
	"github.com/phonestore/storefront/internal/domain"
)

// LoginRequest represents the login form
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the sign-up form
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FullName        string `json:"fullName" validate:"required,max=100"`
	Phone           string `json:"phone" validate:"required,vnphone"`
}

// ProfileRequest represents the profile edit form
type ProfileRequest struct {
	FullName    string `json:"fullName" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"required,vnphone"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
}

// ChangePasswordRequest represents the password change form
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// AddressRequest represents the shipping address form
type AddressRequest struct {
	FullName  string `json:"fullName" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,vnphone"`
	Street    string `json:"street" validate:"required"`
	Ward      string `json:"ward" validate:"required"`
	District  string `json:"district" validate:"required"`
	Province  string `json:"province" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

// AddToCartRequest represents adding a product variant to the cart
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

// UpdateCartItemRequest represents a quantity change
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=1,max=99"`
}

// RatingRequest represents a product review
type RatingRequest struct {
	Stars   int    `json:"stars" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// CheckoutRequest represents placing an order from the current cart
type CheckoutRequest struct {
	AddressID      string               `json:"addressId"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod" validate:"required,oneof=COD ONLINE INSTALLMENT"`
	Note           string               `json:"note" validate:"max=500"`
	ReturnURL      string               `json:"returnUrl" validate:"omitempty,url"`
	IdempotencyKey string               `json:"idempotencyKey"`
}

// CheckoutSummary is what the checkout page shows before placing the order
type CheckoutSummary struct {
	Cart              *domain.Cart     `json:"cart"`
	Addresses         []domain.Address `json:"addresses"`
	SelectedAddressID string           `json:"selectedAddressId,omitempty"`
}

// CheckoutResult is the placed order and, for online payment, where to pay
type CheckoutResult struct {
	Order       *domain.Order `json:"order"`
	OrderCode   string        `json:"orderCode"`
	CheckoutURL string        `json:"checkoutUrl,omitempty"`
}

// QuoteRequest asks for an installment schedule
type QuoteRequest struct {
	PlanID string `json:"planId" validate:"required"`
	Price  int64  `json:"price" validate:"gt=0"`
	Tenor  int    `json:"tenor" validate:"gt=0"`
}

// ApplicationRequest represents the installment application form
type ApplicationRequest struct {
	PlanID        string `json:"planId" validate:"required"`
	ProductID     string `json:"productId" validate:"required"`
	VariantID     string `json:"variantId"`
	Price         int64  `json:"price" validate:"gt=0"`
	Tenor         int    `json:"tenor" validate:"gt=0"`
	FullName      string `json:"fullName" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,vnphone"`
	IDNumber      string `json:"idNumber" validate:"required,cccd"`
	DateOfBirth   string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Address       string `json:"address" validate:"required"`
	MonthlyIncome int64  `json:"monthlyIncome" validate:"gte=0"`
}
