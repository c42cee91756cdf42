package installment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/phonestore/storefront/pkg/errors"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name                  string
		principal             int64
		dp, rate              float64
		tenor                 int
		prepay, loan, monthly int64
		total, difference     int64
	}{
		{"zero interest", 20_000_000, 30, 0, 12, 6_000_000, 14_000_000, 1_166_667, 14_000_004, 4},
		{"annuity", 20_000_000, 30, 1.5, 12, 6_000_000, 14_000_000, 1_283_520, 15_402_240, 1_402_240},
		{"six months", 15_990_000, 20, 2, 6, 3_198_000, 12_792_000, 2_283_702, 13_702_212, 910_212},
		{"no down payment", 9_990_000, 0, 1, 24, 0, 9_990_000, 470_264, 11_286_336, 1_296_336},
		{"zero interest rounds down", 100, 0, 0, 3, 0, 100, 33, 99, -1},
		{"full down payment", 1000, 100, 1.5, 6, 1000, 0, 0, 0, 0},
		{"zero price", 0, 20, 1.5, 6, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Calculate(tt.principal, tt.dp, tt.rate, tt.tenor)
			require.NoError(t, err)
			assert.Equal(t, tt.prepay, q.PrepayAmount)
			assert.Equal(t, tt.loan, q.LoanAmount)
			assert.Equal(t, tt.monthly, q.MonthlyPayment)
			assert.Equal(t, tt.total, q.TotalPayment)
			assert.Equal(t, tt.difference, q.PriceDifference)
		})
	}
}

func TestCalculate_Invariants(t *testing.T) {
	principals := []int64{0, 1, 99, 1_000_001, 7_490_000, 34_990_000}
	downPayments := []float64{0, 10, 33.3, 50, 99, 100}
	rates := []float64{0, 0.5, 1.66, 3}
	tenors := []int{1, 3, 6, 9, 12, 18, 24}

	for _, p := range principals {
		for _, dp := range downPayments {
			for _, rate := range rates {
				for _, n := range tenors {
					q, err := Calculate(p, dp, rate, n)
					require.NoError(t, err)

					assert.Equal(t, p, q.PrepayAmount+q.LoanAmount)
					assert.Equal(t, q.MonthlyPayment*int64(n), q.TotalPayment)
					assert.Equal(t, q.TotalPayment-q.LoanAmount, q.PriceDifference)
					if rate > 0 {
						assert.GreaterOrEqual(t, q.TotalPayment, q.LoanAmount,
							"p=%d dp=%v rate=%v n=%d", p, dp, rate, n)
					} else {
						gap := q.TotalPayment - q.LoanAmount
						if gap < 0 {
							gap = -gap
						}
						assert.LessOrEqual(t, gap, int64(n-1),
							"p=%d dp=%v n=%d", p, dp, n)
					}
				}
			}
		}
	}
}

func TestCalculate_RoundsHalfAwayFromZero(t *testing.T) {
	// 15 * 10% = 1.5 -> 2
	q, err := Calculate(15, 10, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), q.PrepayAmount)
	assert.Equal(t, int64(13), q.LoanAmount)
}

func TestCalculate_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		dp, rate  float64
		tenor     int
	}{
		{"negative price", -1, 10, 1, 6},
		{"negative down payment", 1000, -1, 1, 6},
		{"down payment above price", 1000, 100.5, 1, 6},
		{"negative rate", 1000, 10, -0.5, 6},
		{"zero tenor", 1000, 10, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.principal, tt.dp, tt.rate, tt.tenor)
			var verr *apperrors.ErrValidation
			assert.ErrorAs(t, err, &verr)
		})
	}
}
