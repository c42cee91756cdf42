package payment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
)

const (
	// DefaultPollInterval is the pause between two status requests
	DefaultPollInterval = 2 * time.Second
	// DefaultMaxAttempts bounds a run; with the default interval this is about one minute
	DefaultMaxAttempts = 30
)

// Messages shown alongside each final state
const (
	MessageCaptured = "Payment successful. Your order is confirmed."
	MessageFailed   = "Payment failed. Please try again or choose another payment method."
	MessageCanceled = "Payment was canceled."
	MessagePending  = "We are still waiting for the payment provider. Check again in a moment."
	MessageError    = "Could not check the payment status."
	MessageNoOrder  = "Missing order code."
	MessageStopped  = "Status check stopped."
)

// StatusFetcher reads the backend payment status of an order
type StatusFetcher interface {
	GetPaymentStatus(ctx context.Context, sess *session.Session, orderCode string) (*domain.PaymentStatus, error)
}

// Snapshot is the poller state after a step
type Snapshot struct {
	OrderCode         string              `json:"orderCode"`
	State             domain.PaymentState `json:"state"`
	Attempts          int                 `json:"attempts"`
	Amount            *int64              `json:"amount,omitempty"`
	ProviderPaymentID *string             `json:"providerPaymentId,omitempty"`
	Message           string              `json:"message"`
	// Exhausted is set when the attempt cap was hit while still PENDING
	Exhausted bool `json:"exhausted"`
}

// Option configures a Poller
type Option func(*Poller)

// WithInterval overrides DefaultPollInterval
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts
func WithMaxAttempts(n int) Option {
	return func(p *Poller) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithOnUpdate registers a callback that receives every intermediate snapshot
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(p *Poller) { p.onUpdate = fn }
}

// Poller reconciles an order's payment after the provider redirect. The first
// request is sent immediately, then one every interval, and a run never makes
// more than maxAttempts requests. A run is restarted by calling Run again.
type Poller struct {
	fetcher     StatusFetcher
	interval    time.Duration
	maxAttempts int
	logger      *zap.Logger
	onUpdate    func(Snapshot)
}

// NewPoller creates a poller
func NewPoller(fetcher StatusFetcher, opts ...Option) *Poller {
	p := &Poller{
		fetcher:     fetcher,
		interval:    DefaultPollInterval,
		maxAttempts: DefaultMaxAttempts,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the configured pause between requests
func (p *Poller) Interval() time.Duration { return p.interval }

// MaxAttempts returns the configured attempt cap
func (p *Poller) MaxAttempts() int { return p.maxAttempts }

// Run polls until a terminal state, an error, the attempt cap or ctx ends
func (p *Poller) Run(ctx context.Context, sess *session.Session, orderCode string) Snapshot {
	orderCode = strings.TrimSpace(orderCode)
	snap := Snapshot{OrderCode: orderCode, State: domain.PaymentStateLoading}
	p.publish(snap)

	if orderCode == "" {
		snap.State = domain.PaymentStateError
		snap.Message = MessageNoOrder
		p.publish(snap)
		return snap
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			snap.Message = MessageStopped
			p.logger.Info("Payment polling stopped",
				zap.String("order_code", orderCode),
				zap.Int("attempts", snap.Attempts),
				zap.Error(ctx.Err()),
			)
			return snap
		case <-timer.C:
		}

		snap.Attempts++
		status, err := p.fetcher.GetPaymentStatus(ctx, sess, orderCode)
		if err != nil {
			if ctx.Err() != nil {
				snap.Message = MessageStopped
				return snap
			}
			p.logger.Error("Payment status check failed",
				zap.String("order_code", orderCode),
				zap.Int("attempt", snap.Attempts),
				zap.Error(err),
			)
			snap.State = domain.PaymentStateError
			snap.Message = MessageError
			p.publish(snap)
			return snap
		}

		next := status.Status
		if !snap.State.CanTransitionTo(next) {
			next = domain.PaymentStatePending
		}
		snap.State = next
		snap.Amount = status.Amount
		snap.ProviderPaymentID = status.ProviderPaymentID

		if next.IsTerminal() {
			snap.Message = messageFor(next)
			p.logger.Info("Payment reached final state",
				zap.String("order_code", orderCode),
				zap.String("state", string(next)),
				zap.Int("attempts", snap.Attempts),
			)
			p.publish(snap)
			return snap
		}

		if snap.Attempts >= p.maxAttempts {
			snap.Exhausted = true
			snap.Message = MessagePending
			p.logger.Warn("Payment still pending after attempt cap",
				zap.String("order_code", orderCode),
				zap.Int("attempts", snap.Attempts),
			)
			p.publish(snap)
			return snap
		}

		p.publish(snap)
		timer.Reset(p.interval)
	}
}

func (p *Poller) publish(s Snapshot) {
	if p.onUpdate != nil {
		p.onUpdate(s)
	}
}

func messageFor(state domain.PaymentState) string {
	switch state {
	case domain.PaymentStateCaptured:
		return MessageCaptured
	case domain.PaymentStateFailed:
		return MessageFailed
	case domain.PaymentStateCanceled:
		return MessageCanceled
	case domain.PaymentStateError:
		return MessageError
	default:
		return MessagePending
	}
}
