package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Badsnus/qrgen-studio/internal/domain/dto"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/internal/domain/payload"
	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
	qr "github.com/Badsnus/qrgen-studio/pkg/qrcode"
)

const DefaultHistoryLimit = 20

type QRCodeStorage interface {
	Create(ctx context.Context, code *entity.QRCode) (*entity.QRCode, error)
	CreateOnce(ctx context.Context, code *entity.QRCode) (*entity.QRCode, bool, error)
	Get(ctx context.Context, id string) (*entity.QRCode, error)
	GetByUser(ctx context.Context, userID string, limit, offset int) ([]entity.QRCode, error)
	RecordDownload(ctx context.Context, id string, format string, at time.Time) error
}

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
}

// HistoryService keeps the saved snapshots of a user. A snapshot is immutable apart from
// its download counters.
type HistoryService struct {
	codes  QRCodeStorage
	events EventStorage
	logger *types.Logger
	now    func() time.Time
}

func NewHistoryService(codes QRCodeStorage, events EventStorage, logger *types.Logger) *HistoryService {
	return &HistoryService{
		codes:  codes,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// Save stores state as a new snapshot together with its encoded payload.
func (s *HistoryService) Save(ctx context.Context, userID string, state entity.State) (dto.SavedCode, error) {
	code, err := s.codes.Create(ctx, snapshot(userID, state))
	if err != nil {
		return dto.SavedCode{}, fmt.Errorf("save qr code: %w", err)
	}
	s.trackSaved(ctx, code)
	return dto.NewSavedCodeFromEntity(*code), nil
}

// SaveOnce is Save under a caller-chosen id. Saving an id again returns the snapshot
// stored first and records nothing.
func (s *HistoryService) SaveOnce(ctx context.Context, id, userID string, state entity.State) (dto.SavedCode, error) {
	code := snapshot(userID, state)
	code.ID = id
	stored, created, err := s.codes.CreateOnce(ctx, code)
	if err != nil {
		return dto.SavedCode{}, fmt.Errorf("save qr code %s: %w", id, err)
	}
	if created {
		s.trackSaved(ctx, stored)
	}
	return dto.NewSavedCodeFromEntity(*stored), nil
}

func snapshot(userID string, state entity.State) *entity.QRCode {
	state = state.Clone()
	state.Style.Normalize()
	return &entity.QRCode{
		UserID:  userID,
		Type:    state.Type,
		Data:    state.Fields,
		Styles:  state.Style,
		Payload: payload.Encode(state.Type, state.Fields),
	}
}

func (s *HistoryService) trackSaved(ctx context.Context, code *entity.QRCode) {
	trackEvent(ctx, s.events, s.logger, &entity.Event{
		UserID: code.UserID,
		Type:   entity.EventQRSaved,
		Data:   entity.FormFields{"qr_id": code.ID, "qr_type": string(code.Type)},
	})
}

func (s *HistoryService) Get(ctx context.Context, id string) (dto.SavedCode, error) {
	code, err := s.codes.Get(ctx, id)
	if err != nil {
		return dto.SavedCode{}, err
	}
	return dto.NewSavedCodeFromEntity(*code), nil
}

// List returns the snapshots of userID, newest first.
func (s *HistoryService) List(ctx context.Context, userID string, limit, offset int) ([]dto.SavedCode, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	codes, err := s.codes.GetByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SavedCode, 0, len(codes))
	for _, c := range codes {
		out = append(out, dto.NewSavedCodeFromEntity(c))
	}
	return out, nil
}

// RecordDownload bumps the download counter of snapshot id and remembers the format.
func (s *HistoryService) RecordDownload(ctx context.Context, id string, format qr.Format) error {
	code, err := s.codes.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.codes.RecordDownload(ctx, id, string(format), s.now()); err != nil {
		return fmt.Errorf("record download of %s: %w", id, err)
	}

	trackEvent(ctx, s.events, s.logger, &entity.Event{
		UserID: code.UserID,
		Type:   entity.EventQRDownloaded,
		Data:   entity.FormFields{"qr_id": id, "format": string(format)},
	})
	return nil
}

// trackEvent stores an analytics event. Analytics never fail the action they describe.
func trackEvent(ctx context.Context, events EventStorage, logger *types.Logger, event *entity.Event) {
	if events == nil {
		return
	}
	if _, err := events.Create(ctx, event); err != nil {
		logger.Warnf("failed to track %s event: %v", event.Type, err)
	}
}
