package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Badsnus/qrgen-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

type SessionStorage struct {
	db *gorm.DB
}

func NewSessionStorage(db *gorm.DB) *SessionStorage {
	return &SessionStorage{
		db: db,
	}
}

func (s *SessionStorage) Create(ctx context.Context, session *entity.AnonymousSession) (*entity.AnonymousSession, error) {
	err := s.db.WithContext(ctx).Create(session).Error
	return session, err
}

func (s *SessionStorage) Get(ctx context.Context, id string) (*entity.AnonymousSession, error) {
	var session entity.AnonymousSession
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotFound
	}
	return &session, err
}

func (s *SessionStorage) Update(ctx context.Context, session *entity.AnonymousSession) (*entity.AnonymousSession, error) {
	err := s.db.WithContext(ctx).Save(session).Error
	return session, err
}
