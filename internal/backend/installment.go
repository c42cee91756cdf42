package backend

import (
	"context"
	"net/http"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
)

// GetPlans returns every installment plan; filtering happens client-side
func (c *Client) GetPlans(ctx context.Context) ([]domain.InstallmentPlan, error) {
	var plans []domain.InstallmentPlan
	if err := c.do(ctx, request{method: http.MethodGet, path: pathInstallmentPlans}, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// PrecheckApplication asks whether the applicant is eligible. A 200 with
// eligible=false is a valid answer, not an error.
func (c *Client) PrecheckApplication(ctx context.Context, sess *session.Session, in ApplicationInput) (*domain.EligibilityResult, error) {
	var result domain.EligibilityResult
	err := c.do(ctx, request{method: http.MethodPost, path: pathInstallmentPrecheck, session: sess, body: in, resource: "installment plan"}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateApplication submits the installment application
func (c *Client) CreateApplication(ctx context.Context, sess *session.Session, in ApplicationInput) (*domain.InstallmentApplication, error) {
	var app domain.InstallmentApplication
	err := c.do(ctx, request{method: http.MethodPost, path: pathInstallmentApply, session: sess, body: in, resource: "installment plan"}, &app)
	if err != nil {
		return nil, err
	}
	return &app, nil
}
