package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qrgen-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen-studio/internal/domain/dto"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/pkg/logger"
)

type fakeGateway struct {
	mu       sync.Mutex
	requests []dto.CheckoutRequest
	status   dto.PaymentStatus
	err      error
}

func (g *fakeGateway) CreateCheckout(_ context.Context, req dto.CheckoutRequest) (dto.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.err != nil {
		return dto.CheckoutSession{}, g.err
	}
	return dto.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
}

func (g *fakeGateway) VerifySession(_ context.Context, _ string) (dto.PaymentStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status, g.err
}

type memEntitlements struct {
	mu      sync.Mutex
	granted map[string]time.Duration
}

func (m *memEntitlements) Get(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.granted[sessionID]
	return ok, nil
}

func (m *memEntitlements) Set(_ context.Context, sessionID string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.granted == nil {
		m.granted = map[string]time.Duration{}
	}
	m.granted[sessionID] = expiration
	return nil
}

type memDrafts struct {
	mu     sync.Mutex
	drafts map[string]entity.State
	ttl    time.Duration
}

func (m *memDrafts) Get(_ context.Context, sessionID string) (entity.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.drafts[sessionID]
	if !ok {
		return entity.State{}, errorz.ErrDraftNotFound
	}
	return s.Clone(), nil
}

func (m *memDrafts) Set(_ context.Context, sessionID string, state entity.State, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.drafts == nil {
		m.drafts = map[string]entity.State{}
	}
	m.drafts[sessionID] = state.Clone()
	m.ttl = expiration
	return nil
}

func newTestCheckout() (*CheckoutService, *fakeGateway, *memEntitlements, *memDrafts, *memEvents) {
	gateway, ents, drafts, events := &fakeGateway{}, &memEntitlements{}, &memDrafts{}, &memEvents{}
	s := NewCheckoutService(gateway, ents, drafts, events, logger.Nop(), CheckoutConfig{
		SuccessURL: "https://qrgen.studio/?payment=success",
		CancelURL:  "https://qrgen.studio/?payment=cancelled",
	})
	return s, gateway, ents, drafts, events
}

func TestCheckoutBeginSendsSnapshot(t *testing.T) {
	s, gateway, _, drafts, events := newTestCheckout()
	state := wifiState()
	state.Style.Logo.Image = "data:image/png;base64,AAAA"

	session, err := s.Begin(context.Background(), "sess-1", state, "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/cs_1", session.URL)

	require.Len(t, gateway.requests, 1)
	req := gateway.requests[0]
	assert.Equal(t, "me@example.com", req.Email)
	assert.Equal(t, "https://qrgen.studio/?payment=success", req.SuccessURL)
	assert.Equal(t, "wifi", req.Metadata.Type)
	assert.Equal(t, "WIFI:T:WPA;S:HomeNet;P:secret;;", req.Metadata.Payload)
	assert.True(t, req.Metadata.HasLogo)

	assert.Equal(t, DefaultDraftTTL, drafts.ttl)
	assert.Equal(t, []entity.EventType{entity.EventCheckoutStarted}, events.types())
}

func TestCheckoutBackendFailureKeepsDraft(t *testing.T) {
	s, gateway, _, _, _ := newTestCheckout()
	gateway.err = errBackend

	state := wifiState()
	_, err := s.Begin(context.Background(), "sess-1", state, "")
	assert.ErrorIs(t, err, errorz.ErrPaymentUnavailable)
	assert.ErrorIs(t, err, errBackend)

	draft, err := s.Draft(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, state, draft)
}

func TestCheckoutConfirmRestoresDraft(t *testing.T) {
	s, gateway, ents, _, _ := newTestCheckout()
	ctx := context.Background()
	state := wifiState()
	state.Style.Foreground = "#123456"

	_, err := s.Begin(ctx, "sess-1", state, "")
	require.NoError(t, err)
	assert.ErrorIs(t, s.RequireEntitled(ctx, "sess-1"), errorz.ErrNotEntitled)

	gateway.status = dto.PaymentStatus{Paid: true, Status: "paid"}
	restored, err := s.Confirm(ctx, "sess-1", "cs_1")
	require.NoError(t, err)

	assert.Equal(t, state, restored)
	assert.NoError(t, s.RequireEntitled(ctx, "sess-1"))
	assert.Equal(t, DefaultEntitlementTTL, ents.granted["sess-1"])
}

func TestCheckoutConfirmUnpaid(t *testing.T) {
	s, gateway, _, _, _ := newTestCheckout()
	gateway.status = dto.PaymentStatus{Paid: false, Status: "unpaid"}

	_, err := s.Confirm(context.Background(), "sess-1", "cs_1")
	assert.ErrorIs(t, err, errorz.ErrNotEntitled)

	ok, err := s.Entitled(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckoutConfirmWithoutDraft(t *testing.T) {
	s, gateway, _, _, _ := newTestCheckout()
	gateway.status = dto.PaymentStatus{Paid: true, Status: "paid"}

	_, err := s.Confirm(context.Background(), "sess-2", "cs_1")
	assert.ErrorIs(t, err, errorz.ErrDraftNotFound)
	// The payment still counts.
	assert.NoError(t, s.RequireEntitled(context.Background(), "sess-2"))
}

func TestCheckoutVerifyFailure(t *testing.T) {
	s, gateway, _, _, _ := newTestCheckout()
	gateway.err = errBackend

	_, err := s.Confirm(context.Background(), "sess-1", "cs_1")
	assert.ErrorIs(t, err, errorz.ErrPaymentUnavailable)
}
