package backend

import "github.com/phonestore/storefront/internal/domain"

// Backend REST paths
const (
	pathLogin          = "/auth/login"
	pathRegister       = "/auth/register"
	pathProfile        = "/users/me"
	pathChangePassword = "/users/me/password"

	pathProducts      = "/products"
	pathProductSearch = "/products/search"
	pathProduct       = "/products/%s"
	pathRatings       = "/products/%s/ratings"

	pathCart      = "/cart"
	pathCartItems = "/cart/items"
	pathCartItem  = "/cart/items/%s"

	pathAddresses      = "/addresses"
	pathAddress        = "/addresses/%s"
	pathAddressDefault = "/addresses/%s/default"

	pathOrders         = "/orders"
	pathOrder          = "/orders/%s"
	pathPaymentIntents = "/payments/intents"
	pathPaymentStatus  = "/payments/%s/status"

	pathInstallmentPlans    = "/installment/plans"
	pathInstallmentPrecheck = "/installment/applications/precheck"
	pathInstallmentApply    = "/installment/applications"

	pathIdentityCCCD = "/identity/cccd"
)

// SearchQuery is the input of the product search endpoint
type SearchQuery struct {
	Name  string
	Limit int
}

// ProductListQuery pages through the catalog
type ProductListQuery struct {
	Page     int
	Size     int
	Brand    string
	Sort     string
	MinPrice int64
	MaxPrice int64
}

// LoginInput authenticates an account
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput creates an account
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// AuthResult is the answer of login and register
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// ProfileInput updates the account profile
type ProfileInput struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// ChangePasswordInput rotates the account password
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// RatingInput submits a product review
type RatingInput struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

// CartItemInput adds a product to the cart
type CartItemInput struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity"`
}

// AddressInput creates a shipping address
type AddressInput struct {
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Ward      string `json:"ward"`
	District  string `json:"district"`
	Province  string `json:"province"`
	IsDefault bool   `json:"isDefault"`
}

// OrderInput places an order from the current cart
type OrderInput struct {
	AddressID      string               `json:"addressId"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod"`
	Note           string               `json:"note,omitempty"`
	IdempotencyKey string               `json:"idempotencyKey"`
}

// PaymentIntentInput asks the backend for a provider checkout URL
type PaymentIntentInput struct {
	OrderCode string `json:"orderCode"`
	ReturnURL string `json:"returnUrl,omitempty"`
}

// ApplicationInput is the installment application payload, used for both
// precheck and submission
type ApplicationInput struct {
	PlanID        string `json:"planId"`
	ProductID     string `json:"productId"`
	VariantID     string `json:"variantId,omitempty"`
	Price         int64  `json:"price"`
	Tenor         int    `json:"tenor"`
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	IDNumber      string `json:"idNumber"`
	DateOfBirth   string `json:"dateOfBirth"`
	Address       string `json:"address"`
	MonthlyIncome int64  `json:"monthlyIncome"`
}

// IdentityUpload carries the two JPEG sides of a CCCD card
type IdentityUpload struct {
	Front []byte
	Back  []byte
}
