package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Badsnus/qrgen-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

type QRCodeStorage struct {
	db *gorm.DB
}

func NewQRCodeStorage(db *gorm.DB) *QRCodeStorage {
	return &QRCodeStorage{
		db: db,
	}
}

// Create stores a new snapshot. The id is generated by the database.
func (s *QRCodeStorage) Create(ctx context.Context, code *entity.QRCode) (*entity.QRCode, error) {
	err := s.db.WithContext(ctx).Create(code).Error
	return code, err
}

// CreateOnce stores code under its preset id. When a row with that id exists it is
// returned unchanged and created is false.
func (s *QRCodeStorage) CreateOnce(ctx context.Context, code *entity.QRCode) (*entity.QRCode, bool, error) {
	res := createOnce(s.db.WithContext(ctx), code)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return code, true, nil
	}
	existing, err := s.Get(ctx, code.ID)
	return existing, false, err
}

func createOnce(db *gorm.DB, code *entity.QRCode) *gorm.DB {
	return db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).Create(code)
}

// Get returns the snapshot with the given id or errorz.ErrNotFound.
func (s *QRCodeStorage) Get(ctx context.Context, id string) (*entity.QRCode, error) {
	var code entity.QRCode
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotFound
	}
	return &code, err
}

// GetByUser returns a page of the snapshots of userID, newest first.
func (s *QRCodeStorage) GetByUser(ctx context.Context, userID string, limit, offset int) ([]entity.QRCode, error) {
	var codes []entity.QRCode
	err := byUser(s.db.WithContext(ctx), userID, limit, offset).Find(&codes).Error
	return codes, err
}

// Count returns how many snapshots userID has.
func (s *QRCodeStorage) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.QRCode{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// RecordDownload bumps the counter in a single statement, so concurrent downloads are all
// counted. formats keeps each format once.
func (s *QRCodeStorage) RecordDownload(ctx context.Context, id string, format string, at time.Time) error {
	res := recordDownload(s.db.WithContext(ctx), id, format, at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorz.ErrNotFound
	}
	return nil
}

func byUser(db *gorm.DB, userID string, limit, offset int) *gorm.DB {
	return db.Where("user_id = ?", userID).Order("created_at DESC").Offset(offset).Limit(limit)
}

func recordDownload(db *gorm.DB, id string, format string, at time.Time) *gorm.DB {
	return db.Model(&entity.QRCode{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
		"download_count":     gorm.Expr("download_count + 1"),
		"last_downloaded_at": at,
		"formats":            gorm.Expr("CASE WHEN ? = ANY(formats) THEN formats ELSE array_append(formats, ?) END", format, format),
	})
}
