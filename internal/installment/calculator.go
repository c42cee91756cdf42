package installment

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/phonestore/storefront/pkg/errors"
)

// Quote is the repayment schedule for one plan and tenor, in whole currency units
type Quote struct {
	Principal          int64   `json:"principal"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
	MonthlyRatePercent float64 `json:"monthlyRatePercent"`
	Tenor              int     `json:"tenor"`
	PrepayAmount       int64   `json:"prepayAmount"`
	LoanAmount         int64   `json:"loanAmount"`
	MonthlyPayment     int64   `json:"monthlyPayment"`
	TotalPayment       int64   `json:"totalPayment"`
	PriceDifference    int64   `json:"priceDifference"`
}

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Calculate computes prepayment, loan and a fixed monthly payment.
// A zero rate divides the loan evenly; otherwise the standard annuity
// formula with r = monthlyRatePercent/100 is used. Every amount is rounded
// half away from zero. With a positive rate the total repaid is never below
// the loan.
func Calculate(principal int64, downPaymentPercent, monthlyRatePercent float64, tenor int) (Quote, error) {
	switch {
	case principal < 0:
		return Quote{}, &apperrors.ErrValidation{Message: "price must not be negative"}
	case downPaymentPercent < 0 || downPaymentPercent > 100:
		return Quote{}, &apperrors.ErrValidation{Message: "down payment percent must be in [0, 100]"}
	case monthlyRatePercent < 0:
		return Quote{}, &apperrors.ErrValidation{Message: "interest rate must not be negative"}
	case tenor <= 0:
		return Quote{}, &apperrors.ErrValidation{Message: "tenor must be at least one month"}
	}

	p := decimal.NewFromInt(principal)
	prepay := p.Mul(decimal.NewFromFloat(downPaymentPercent)).Div(hundred).Round(0)
	loan := p.Sub(prepay)
	n := decimal.NewFromInt(int64(tenor))

	var monthly decimal.Decimal
	if monthlyRatePercent == 0 {
		monthly = loan.Div(n).Round(0)
	} else {
		r := decimal.NewFromFloat(monthlyRatePercent).Div(hundred)
		growth := one.Add(r).Pow(n)
		monthly = loan.Mul(r).Mul(growth).Div(growth.Sub(one)).Round(0)
		if monthly.Mul(n).LessThan(loan) {
			monthly = loan.Div(n).Ceil()
		}
	}

	total := monthly.Mul(n)
	return Quote{
		Principal:          principal,
		DownPaymentPercent: downPaymentPercent,
		MonthlyRatePercent: monthlyRatePercent,
		Tenor:              tenor,
		PrepayAmount:       prepay.IntPart(),
		LoanAmount:         loan.IntPart(),
		MonthlyPayment:     monthly.IntPart(),
		TotalPayment:       total.IntPart(),
		PriceDifference:    total.Sub(loan).IntPart(),
	}, nil
}
