package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/identity"
	"github.com/phonestore/storefront/internal/session"
	"github.com/phonestore/storefront/pkg/errors"
)

// IdentityPhoto is one uploaded side of the card with its crop
type IdentityPhoto struct {
	Data []byte
	Crop identity.Crop
}

type identityService struct {
	uploader identity.Uploader
	maxBytes int64
	logger   *zap.Logger
}

// NewIdentityService creates a new identity service
func NewIdentityService(u identity.Uploader, maxBytes int64, logger *zap.Logger) *identityService {
	return &identityService{
		uploader: u,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Verify runs both card sides through the wizard and submits them
func (s *identityService) Verify(ctx context.Context, sess *session.Session, front, back IdentityPhoto) (*domain.IdentityData, error) {
	if !sess.Authenticated() {
		return nil, &errors.ErrUnauthorized{Message: "login required to verify identity"}
	}

	w := identity.NewWizard(s.uploader, s.maxBytes, s.logger)
	if err := w.SetSide(domain.DocumentSideFront, front.Data, front.Crop); err != nil {
		return nil, err
	}
	if err := w.SetSide(domain.DocumentSideBack, back.Data, back.Crop); err != nil {
		return nil, err
	}
	return w.Submit(ctx, sess)
}
