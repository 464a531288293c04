package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Badsnus/qrgen-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen-studio/internal/domain/dto"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/internal/domain/payload"
	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
)

const (
	DefaultDraftTTL       = 24 * time.Hour
	DefaultEntitlementTTL = 30 * 24 * time.Hour
)

// PaymentGateway is the payment backend. It opens checkouts and reports whether they were
// paid; card handling and webhooks stay on its side.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req dto.CheckoutRequest) (dto.CheckoutSession, error)
	VerifySession(ctx context.Context, checkoutID string) (dto.PaymentStatus, error)
}

type EntitlementStorage interface {
	Get(ctx context.Context, sessionID string) (bool, error)
	Set(ctx context.Context, sessionID string, expiration time.Duration) error
}

// DraftStorage keeps the state a user is paying for while they are on the checkout page.
// Get returns errorz.ErrDraftNotFound when there is no draft.
type DraftStorage interface {
	Get(ctx context.Context, sessionID string) (entity.State, error)
	Set(ctx context.Context, sessionID string, state entity.State, expiration time.Duration) error
}

type CheckoutConfig struct {
	SuccessURL     string
	CancelURL      string
	DraftTTL       time.Duration
	EntitlementTTL time.Duration
}

type CheckoutService struct {
	gateway      PaymentGateway
	entitlements EntitlementStorage
	drafts       DraftStorage
	events       EventStorage
	logger       *types.Logger
	cfg          CheckoutConfig
}

func NewCheckoutService(
	gateway PaymentGateway,
	entitlements EntitlementStorage,
	drafts DraftStorage,
	events EventStorage,
	logger *types.Logger,
	cfg CheckoutConfig,
) *CheckoutService {
	if cfg.DraftTTL <= 0 {
		cfg.DraftTTL = DefaultDraftTTL
	}
	if cfg.EntitlementTTL <= 0 {
		cfg.EntitlementTTL = DefaultEntitlementTTL
	}
	return &CheckoutService{
		gateway:      gateway,
		entitlements: entitlements,
		drafts:       drafts,
		events:       events,
		logger:       logger,
		cfg:          cfg,
	}
}

// Begin preserves state as the draft of sessionID and opens a checkout for it.
// A failed checkout leaves the draft as it was stored, so the user can retry.
func (s *CheckoutService) Begin(ctx context.Context, sessionID string, state entity.State, email string) (dto.CheckoutSession, error) {
	state = state.Clone()
	if err := s.drafts.Set(ctx, sessionID, state, s.cfg.DraftTTL); err != nil {
		return dto.CheckoutSession{}, fmt.Errorf("store draft: %w", err)
	}

	trackEvent(ctx, s.events, s.logger, &entity.Event{
		AnonymousSessionID: sessionID,
		Type:               entity.EventCheckoutStarted,
		Data:               entity.FormFields{"qr_type": string(state.Type)},
	})

	session, err := s.gateway.CreateCheckout(ctx, dto.CheckoutRequest{
		Email:      email,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
		Metadata:   dto.NewCheckoutMetadata(state, payload.Encode(state.Type, state.Fields)),
	})
	if err != nil {
		s.logger.Errorf("(session: %s) checkout failed: %v", sessionID, err)
		return dto.CheckoutSession{}, fmt.Errorf("%w: %w", errorz.ErrPaymentUnavailable, err)
	}
	s.logger.Infof("(session: %s) checkout %s opened", sessionID, session.ID)
	return session, nil
}

// Confirm checks checkoutID with the backend, stores the entitlement and returns the draft
// exactly as it was before the checkout.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID, checkoutID string) (entity.State, error) {
	status, err := s.gateway.VerifySession(ctx, checkoutID)
	if err != nil {
		return entity.State{}, fmt.Errorf("%w: %w", errorz.ErrPaymentUnavailable, err)
	}
	if !status.Paid {
		return entity.State{}, fmt.Errorf("%w: checkout %s is %s", errorz.ErrNotEntitled, checkoutID, status.Status)
	}
	if err := s.entitlements.Set(ctx, sessionID, s.cfg.EntitlementTTL); err != nil {
		return entity.State{}, fmt.Errorf("store entitlement: %w", err)
	}

	return s.Draft(ctx, sessionID)
}

func (s *CheckoutService) Entitled(ctx context.Context, sessionID string) (bool, error) {
	return s.entitlements.Get(ctx, sessionID)
}

// RequireEntitled returns errorz.ErrNotEntitled unless sessionID has paid.
func (s *CheckoutService) RequireEntitled(ctx context.Context, sessionID string) error {
	ok, err := s.Entitled(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return errorz.ErrNotEntitled
	}
	return nil
}

// Draft returns the preserved state of sessionID, or errorz.ErrDraftNotFound once it expired.
func (s *CheckoutService) Draft(ctx context.Context, sessionID string) (entity.State, error) {
	return s.drafts.Get(ctx, sessionID)
}
