package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Badsnus/qrgen-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen-studio/internal/domain/dto"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/internal/domain/utils/validator"
	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
)

type SessionStorage interface {
	Create(ctx context.Context, session *entity.AnonymousSession) (*entity.AnonymousSession, error)
	Get(ctx context.Context, id string) (*entity.AnonymousSession, error)
	Update(ctx context.Context, session *entity.AnonymousSession) (*entity.AnonymousSession, error)
}

type Mailer interface {
	SendSaveLink(ctx context.Context, to, link string) error
}

type CaptureConfig struct {
	// CallbackURL is where the emailed link points; the session id is added as a query
	// parameter.
	CallbackURL string
}

// CaptureService keeps codes of users without an account. The code is stored against the
// email, and a link is mailed that later moves it into the user's history.
type CaptureService struct {
	sessions SessionStorage
	history  *HistoryService
	mailer   Mailer
	events   EventStorage
	logger   *types.Logger
	cfg      CaptureConfig
	now      func() time.Time
}

func NewCaptureService(
	sessions SessionStorage,
	history *HistoryService,
	mailer Mailer,
	events EventStorage,
	logger *types.Logger,
	cfg CaptureConfig,
) *CaptureService {
	return &CaptureService{
		sessions: sessions,
		history:  history,
		mailer:   mailer,
		events:   events,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Capture stores state against email and mails the save link. It returns the anonymous
// session id.
func (s *CaptureService) Capture(ctx context.Context, email string, state entity.State) (string, error) {
	email = strings.TrimSpace(email)
	if !validator.Email(email, nil) {
		return "", fmt.Errorf("%w: %q", errorz.ErrInvalidEmail, email)
	}

	session, err := s.sessions.Create(ctx, &entity.AnonymousSession{
		Email: email,
		Codes: entity.SessionCodes{state.Clone()},
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	link, err := s.link(session.ID)
	if err != nil {
		return "", err
	}
	if err := s.mailer.SendSaveLink(ctx, email, link); err != nil {
		return "", fmt.Errorf("send save link: %w", err)
	}

	trackEvent(ctx, s.events, s.logger, &entity.Event{
		AnonymousSessionID: session.ID,
		Type:               entity.EventEmailCaptured,
		Data:               entity.FormFields{"qr_type": string(state.Type)},
	})
	s.logger.Infof("(session: %s) save link sent", session.ID)
	return session.ID, nil
}

// Claim moves the codes of an anonymous session into the history of userID. A session is
// claimed once; later calls return no codes. Every code is saved under an id derived from
// the session, so a claim retried after a partial failure does not save a code twice.
func (s *CaptureService) Claim(ctx context.Context, sessionID, userID string) ([]dto.SavedCode, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ConvertedAt != nil {
		return nil, nil
	}

	saved := make([]dto.SavedCode, 0, len(session.Codes))
	for i, state := range session.Codes {
		code, err := s.history.SaveOnce(ctx, claimedCodeID(session.ID, i), userID, state)
		if err != nil {
			return saved, err
		}
		saved = append(saved, code)
	}

	now := s.now()
	session.ConvertedAt = &now
	session.UserID = userID
	if _, err := s.sessions.Update(ctx, session); err != nil {
		return saved, fmt.Errorf("mark session %s converted: %w", sessionID, err)
	}
	return saved, nil
}

func claimedCodeID(sessionID string, i int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("qrgen:session/%s/code/%d", sessionID, i))).String()
}

func (s *CaptureService) link(sessionID string) (string, error) {
	u, err := url.Parse(s.cfg.CallbackURL)
	if err != nil {
		return "", fmt.Errorf("parse callback url: %w", err)
	}
	q := u.Query()
	q.Set("session_id", sessionID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
