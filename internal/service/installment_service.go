package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/installment"
	"github.com/phonestore/storefront/internal/metrics"
	"github.com/phonestore/storefront/internal/session"
	"github.com/phonestore/storefront/pkg/errors"
	"github.com/phonestore/storefront/pkg/validate"
)

// DefaultPlansTTL is how long the plan list is reused before re-fetching
const DefaultPlansTTL = 10 * time.Minute

type installmentService struct {
	backend InstallmentBackend
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time

	group     singleflight.Group
	mu        sync.RWMutex
	plans     []domain.InstallmentPlan
	fetchedAt time.Time
}

// NewInstallmentService creates a new installment service
func NewInstallmentService(b InstallmentBackend, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *installmentService {
	if ttl <= 0 {
		ttl = DefaultPlansTTL
	}
	return &installmentService{
		backend: b,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Plans returns the active plans a product at finalPrice qualifies for
func (s *installmentService) Plans(ctx context.Context, finalPrice int64) ([]domain.InstallmentPlan, error) {
	all, err := s.allPlans(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]domain.InstallmentPlan, 0, len(all))
	for _, p := range all {
		if p.Active && p.MinPrice <= finalPrice {
			eligible = append(eligible, p)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].InterestRate < eligible[j].InterestRate
	})
	return eligible, nil
}

// Quote computes the schedule for a plan and tenor
func (s *installmentService) Quote(ctx context.Context, req QuoteRequest) (*installment.Quote, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	plan, err := s.eligiblePlan(ctx, req.PlanID, req.Price, req.Tenor)
	if err != nil {
		return nil, err
	}

	q, err := installment.Calculate(req.Price, plan.DownPaymentPercent, plan.InterestRate, req.Tenor)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Apply validates the form, prechecks eligibility and only then creates the
// application. A negative precheck is returned as ErrRejected carrying the
// backend message and is never retried automatically.
func (s *installmentService) Apply(ctx context.Context, sess *session.Session, req ApplicationRequest) (*domain.InstallmentApplication, error) {
	if !sess.Authenticated() {
		return nil, &errors.ErrUnauthorized{Message: "login required to apply for installments"}
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.eligiblePlan(ctx, req.PlanID, req.Price, req.Tenor); err != nil {
		return nil, err
	}

	in := backend.ApplicationInput{
		PlanID:        req.PlanID,
		ProductID:     req.ProductID,
		VariantID:     req.VariantID,
		Price:         req.Price,
		Tenor:         req.Tenor,
		FullName:      req.FullName,
		Phone:         req.Phone,
		IDNumber:      req.IDNumber,
		DateOfBirth:   req.DateOfBirth,
		Address:       req.Address,
		MonthlyIncome: req.MonthlyIncome,
	}

	check, err := s.backend.PrecheckApplication(ctx, sess, in)
	if err != nil {
		s.metrics.InstallmentOutcome("failed")
		return nil, err
	}
	if !check.Eligible {
		s.metrics.InstallmentOutcome("rejected")
		s.logger.Info("Installment application not eligible",
			zap.String("plan_id", req.PlanID),
			zap.String("reason", check.Message),
		)
		reason := check.Message
		if reason == "" {
			reason = "application is not eligible for this plan"
		}
		return nil, &errors.ErrRejected{Reason: reason}
	}

	app, err := s.backend.CreateApplication(ctx, sess, in)
	if err != nil {
		s.metrics.InstallmentOutcome("failed")
		return nil, err
	}
	s.metrics.InstallmentOutcome("created")
	s.logger.Info("Installment application created",
		zap.String("application_id", app.ID),
		zap.String("plan_id", req.PlanID),
	)
	return app, nil
}

func (s *installmentService) eligiblePlan(ctx context.Context, planID string, price int64, tenor int) (*domain.InstallmentPlan, error) {
	plans, err := s.Plans(ctx, price)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if plans[i].ID != planID {
			continue
		}
		if !plans[i].AllowsTenor(tenor) {
			return nil, &errors.ErrValidation{
				Message: "validation failed",
				Fields:  map[string]string{"tenor": "is not offered by this plan"},
			}
		}
		return &plans[i], nil
	}
	return nil, &errors.ErrNotFound{Resource: "installment plan", ID: planID}
}

func (s *installmentService) allPlans(ctx context.Context) ([]domain.InstallmentPlan, error) {
	s.mu.RLock()
	if s.plans != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		plans := s.plans
		s.mu.RUnlock()
		return plans, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do("plans", func() (any, error) {
		plans, err := s.backend.GetPlans(ctx)
		if err != nil {
			return nil, err
		}
		if plans == nil {
			plans = []domain.InstallmentPlan{}
		}
		s.mu.Lock()
		s.plans = plans
		s.fetchedAt = s.now()
		s.mu.Unlock()
		return plans, nil
	})
	if err != nil {
		s.logger.Warn("Failed to load installment plans", zap.Error(err))
		return nil, err
	}
	return v.([]domain.InstallmentPlan), nil
}
