package domain

// PaymentState is the client-side view of a payment while it is being reconciled
type PaymentState string

const (
	PaymentStateLoading  PaymentState = "LOADING"
	PaymentStatePending  PaymentState = "PENDING"
	PaymentStateCaptured PaymentState = "CAPTURED"
	PaymentStateFailed   PaymentState = "FAILED"
	PaymentStateCanceled PaymentState = "CANCELED"
	PaymentStateError    PaymentState = "ERROR"
)

// IsValid checks if the payment state is known
func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStateLoading,
		PaymentStatePending,
		PaymentStateCaptured,
		PaymentStateFailed,
		PaymentStateCanceled,
		PaymentStateError:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is expected.
// ERROR is terminal for a polling run but is not a backend status.
func (s PaymentState) IsTerminal() bool {
	switch s {
	case PaymentStateCaptured, PaymentStateFailed, PaymentStateCanceled, PaymentStateError:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a state transition is valid
func (s PaymentState) CanTransitionTo(next PaymentState) bool {
	switch s {
	case PaymentStateLoading:
		return next == PaymentStatePending ||
			next == PaymentStateCaptured ||
			next == PaymentStateFailed ||
			next == PaymentStateCanceled ||
			next == PaymentStateError
	case PaymentStatePending:
		return next == PaymentStatePending ||
			next == PaymentStateCaptured ||
			next == PaymentStateFailed ||
			next == PaymentStateCanceled ||
			next == PaymentStateError
	case PaymentStateCaptured, PaymentStateFailed, PaymentStateCanceled, PaymentStateError:
		return false // Terminal states
	default:
		return false
	}
}

// ParseBackendPaymentStatus maps the status string of the payment-status
// endpoint. Only the four backend values are accepted.
func ParseBackendPaymentStatus(value string) (PaymentState, bool) {
	switch PaymentState(value) {
	case PaymentStatePending, PaymentStateCaptured, PaymentStateFailed, PaymentStateCanceled:
		return PaymentState(value), true
	default:
		return "", false
	}
}

// PaymentMethod is the checkout payment choice
type PaymentMethod string

const (
	PaymentMethodCOD         PaymentMethod = "COD"
	PaymentMethodOnline      PaymentMethod = "ONLINE"
	PaymentMethodInstallment PaymentMethod = "INSTALLMENT"
)

// IsValid checks if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodOnline, PaymentMethodInstallment:
		return true
	default:
		return false
	}
}

// RequiresPaymentIntent reports whether checkout must create a payment
// intent and hand the user to the provider.
func (m PaymentMethod) RequiresPaymentIntent() bool {
	return m == PaymentMethodOnline
}

// DocumentSide is one face of a CCCD card
type DocumentSide string

const (
	DocumentSideFront DocumentSide = "front"
	DocumentSideBack  DocumentSide = "back"
)
