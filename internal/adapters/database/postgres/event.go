package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

// EventStorage stores analytics events. Rows are never updated.
type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Create(event).Error
	return event, err
}

// CountSince returns how many events of type t were stored after since.
func (s *EventStorage) CountSince(ctx context.Context, t entity.EventType, since time.Time) (int64, error) {
	var count int64
	err := eventsSince(s.db.WithContext(ctx), t, since).Count(&count).Error
	return count, err
}

func eventsSince(db *gorm.DB, t entity.EventType, since time.Time) *gorm.DB {
	return db.Model(&entity.Event{}).Where("event_type = ? AND created_at >= ?", t, since)
}
