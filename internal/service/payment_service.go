package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/config"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/metrics"
	"github.com/phonestore/storefront/internal/payment"
	"github.com/phonestore/storefront/internal/session"
	"github.com/phonestore/storefront/pkg/errors"
)

type paymentService struct {
	fetcher payment.StatusFetcher
	cfg     config.PaymentConfig
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(f payment.StatusFetcher, cfg config.PaymentConfig, m *metrics.Metrics, logger *zap.Logger) *paymentService {
	return &paymentService{
		fetcher: f,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

// Status performs a single status check
func (s *paymentService) Status(ctx context.Context, sess *session.Session, orderCode string) (*domain.PaymentStatus, error) {
	orderCode = strings.TrimSpace(orderCode)
	if orderCode == "" {
		return nil, &errors.ErrValidation{Message: payment.MessageNoOrder}
	}
	return s.fetcher.GetPaymentStatus(ctx, sess, orderCode)
}

// Await runs a bounded polling run and returns its final snapshot. onUpdate
// may be nil.
func (s *paymentService) Await(ctx context.Context, sess *session.Session, orderCode string, onUpdate func(payment.Snapshot)) payment.Snapshot {
	poller := payment.NewPoller(s.fetcher,
		payment.WithInterval(s.cfg.PollInterval),
		payment.WithMaxAttempts(s.cfg.PollMaxAttempts),
		payment.WithLogger(s.logger),
		payment.WithOnUpdate(onUpdate),
	)
	snap := poller.Run(ctx, sess, orderCode)
	if ctx.Err() == nil {
		s.metrics.PaymentOutcome(string(snap.State), snap.Exhausted)
	}
	return snap
}
