package domain

import "time"

// SearchSuggestion is one normalized search-as-you-type result.
// It is rebuilt on every query and never persisted.
type SearchSuggestion struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
}

// Product is the canonical catalog entry after normalization
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Brand       string           `json:"brand,omitempty"`
	Price       int64            `json:"price"`
	Image       string           `json:"image"`
	Images      []string         `json:"images,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
	Rating      float64          `json:"rating,omitempty"`
}

// ProductVariant is a color/storage option of a product
type ProductVariant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
	Stock    int    `json:"stock"`
}

// ProductPage is one page of a catalog listing
type ProductPage struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	Size       int       `json:"size"`
	TotalItems int       `json:"totalItems"`
}

// Rating is a customer review of a product
type Rating struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserName  string    `json:"userName"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentStatus is one answer of the payment-status endpoint
type PaymentStatus struct {
	Status            PaymentState `json:"status"`
	Amount            *int64       `json:"amount,omitempty"`
	ProviderPaymentID *string      `json:"providerPaymentId,omitempty"`
}

// InstallmentPlan is a loan offer from a financing partner.
// InterestRate is a monthly rate in percent.
type InstallmentPlan struct {
	ID                 string  `json:"id"`
	PartnerName        string  `json:"partnerName"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
	InterestRate       float64 `json:"interestRate"`
	AllowedTenors      []int   `json:"allowedTenors"`
	MinPrice           int64   `json:"minPrice"`
	Active             bool    `json:"active"`
}

// AllowsTenor reports whether the plan offers the given duration in months
func (p InstallmentPlan) AllowsTenor(months int) bool {
	for _, t := range p.AllowedTenors {
		if t == months {
			return true
		}
	}
	return false
}

// EligibilityResult is the answer of an installment precheck
type EligibilityResult struct {
	Eligible bool   `json:"eligible"`
	Message  string `json:"message"`
}

// InstallmentApplication is a submitted loan application
type InstallmentApplication struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// User mirrors the backend account
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Verified    bool   `json:"verified"`
}

// Cart mirrors the backend cart; the client never owns it
type Cart struct {
	ID       string     `json:"id"`
	Items    []CartItem `json:"items"`
	Subtotal int64      `json:"subtotal"`
}

// CartItem is a line in the cart
type CartItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// ItemCount sums quantities across lines
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Address is a shipping address of the user
type Address struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Ward      string `json:"ward"`
	District  string `json:"district"`
	Province  string `json:"province"`
	IsDefault bool   `json:"isDefault"`
}

// Order mirrors a backend order
type Order struct {
	ID            string        `json:"id"`
	OrderCode     string        `json:"orderCode"`
	Status        string        `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Total         int64         `json:"total"`
	AddressID     string        `json:"addressId"`
	Items         []CartItem    `json:"items,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// PaymentIntent is where the user is sent to pay online
type PaymentIntent struct {
	OrderCode   string `json:"orderCode"`
	CheckoutURL string `json:"checkoutUrl"`
}

// IdentityData is what the backend extracts from CCCD images
type IdentityData struct {
	IDNumber    string `json:"idNumber"`
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Hometown    string `json:"hometown,omitempty"`
	Residence   string `json:"residence,omitempty"`
	IssueDate   string `json:"issueDate,omitempty"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
}
