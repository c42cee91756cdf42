package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/session"
	"github.com/phonestore/storefront/pkg/errors"
	"github.com/phonestore/storefront/pkg/validate"
)

type accountService struct {
	backend  AccountBackend
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(b AccountBackend, sessions *session.Manager, logger *zap.Logger) *accountService {
	return &accountService{
		backend:  b,
		sessions: sessions,
		logger:   logger,
	}
}

// Login authenticates and stores the token on the session
func (s *accountService) Login(ctx context.Context, sess *session.Session, req LoginRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	res, err := s.backend.Login(ctx, backend.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Authenticate(ctx, sess, res.Token, res.User); err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("session_id", sess.ID))
	return res.User, nil
}

// Register creates the account and logs the session in
func (s *accountService) Register(ctx context.Context, sess *session.Session, req RegisterRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	res, err := s.backend.Register(ctx, backend.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    req.Phone,
	})
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Authenticate(ctx, sess, res.Token, res.User); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("session_id", sess.ID))
	return res.User, nil
}

// Logout drops the credentials and starts a fresh guest cart
func (s *accountService) Logout(ctx context.Context, sess *session.Session) error {
	return s.sessions.Logout(ctx, sess)
}

// Profile returns the current user from the backend and refreshes the session copy
func (s *accountService) Profile(ctx context.Context, sess *session.Session) (*domain.User, error) {
	user, err := s.backend.GetProfile(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.UpdateUser(ctx, sess, user); err != nil {
		s.logger.Warn("Failed to refresh session user", zap.Error(err))
	}
	return user, nil
}

// UpdateProfile validates and saves the profile form
func (s *accountService) UpdateProfile(ctx context.Context, sess *session.Session, req ProfileRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	user, err := s.backend.UpdateProfile(ctx, sess, backend.ProfileInput{
		FullName:    strings.TrimSpace(req.FullName),
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		return nil, err
	}
	if err := s.sessions.UpdateUser(ctx, sess, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword validates and submits a password change
func (s *accountService) ChangePassword(ctx context.Context, sess *session.Session, req ChangePasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if req.CurrentPassword == req.NewPassword {
		return &errors.ErrValidation{
			Message: "validation failed",
			Fields:  map[string]string{"newPassword": "must differ from the current password"},
		}
	}
	return s.backend.ChangePassword(ctx, sess, backend.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
}

// Addresses lists saved shipping addresses
func (s *accountService) Addresses(ctx context.Context, sess *session.Session) ([]domain.Address, error) {
	return s.backend.ListAddresses(ctx, sess)
}

// AddAddress validates and saves a new address
func (s *accountService) AddAddress(ctx context.Context, sess *session.Session, req AddressRequest) (*domain.Address, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return s.backend.CreateAddress(ctx, sess, backend.AddressInput{
		FullName:  strings.TrimSpace(req.FullName),
		Phone:     req.Phone,
		Street:    strings.TrimSpace(req.Street),
		Ward:      strings.TrimSpace(req.Ward),
		District:  strings.TrimSpace(req.District),
		Province:  strings.TrimSpace(req.Province),
		IsDefault: req.IsDefault,
	})
}

// RemoveAddress deletes a saved address
func (s *accountService) RemoveAddress(ctx context.Context, sess *session.Session, id string) error {
	if id == "" {
		return &errors.ErrValidation{Message: "address id is required"}
	}
	return s.backend.DeleteAddress(ctx, sess, id)
}

// SetDefaultAddress marks an address as the default
func (s *accountService) SetDefaultAddress(ctx context.Context, sess *session.Session, id string) error {
	if id == "" {
		return &errors.ErrValidation{Message: "address id is required"}
	}
	return s.backend.SetDefaultAddress(ctx, sess, id)
}
