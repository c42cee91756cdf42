package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStateTransitions(t *testing.T) {
	assert.True(t, PaymentStateLoading.CanTransitionTo(PaymentStatePending))
	assert.True(t, PaymentStatePending.CanTransitionTo(PaymentStatePending))
	assert.True(t, PaymentStatePending.CanTransitionTo(PaymentStateCaptured))
	assert.True(t, PaymentStatePending.CanTransitionTo(PaymentStateError))

	for _, terminal := range []PaymentState{PaymentStateCaptured, PaymentStateFailed, PaymentStateCanceled, PaymentStateError} {
		assert.True(t, terminal.IsTerminal(), terminal)
		assert.False(t, terminal.CanTransitionTo(PaymentStatePending), terminal)
	}
	assert.False(t, PaymentStatePending.IsTerminal())
	assert.False(t, PaymentState("SETTLED").IsValid())
}

func TestParseBackendPaymentStatus(t *testing.T) {
	s, ok := ParseBackendPaymentStatus("CAPTURED")
	assert.True(t, ok)
	assert.Equal(t, PaymentStateCaptured, s)

	_, ok = ParseBackendPaymentStatus("LOADING")
	assert.False(t, ok)
	_, ok = ParseBackendPaymentStatus("captured")
	assert.False(t, ok)
}

func TestPaymentMethod(t *testing.T) {
	assert.True(t, PaymentMethodOnline.RequiresPaymentIntent())
	assert.False(t, PaymentMethodCOD.RequiresPaymentIntent())
	assert.False(t, PaymentMethod("CARD").IsValid())
}

func TestPlanAllowsTenor(t *testing.T) {
	plan := InstallmentPlan{AllowedTenors: []int{6, 9, 12}}
	assert.True(t, plan.AllowsTenor(9))
	assert.False(t, plan.AllowsTenor(24))
}

func TestCartItemCount(t *testing.T) {
	cart := Cart{Items: []CartItem{{Quantity: 2}, {Quantity: 1}}}
	assert.Equal(t, 3, cart.ItemCount())
}
