package entity

import (
	"time"

	"github.com/lib/pq"
)

// QRCode is a saved snapshot of a state. Only the download counters change after creation.
type QRCode struct {
	ID               string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt        time.Time   `gorm:"not null"`
	UpdatedAt        time.Time
	UserID           string      `gorm:"not null;index"`
	Type             QRType      `gorm:"not null"`
	Data             FormFields  `gorm:"type:jsonb;not null"`
	Styles           StyleConfig `gorm:"type:jsonb;not null"`
	Payload          string      `gorm:"not null"`
	DownloadCount    int         `gorm:"not null;default:0"`
	LastDownloadedAt *time.Time
	Formats          pq.StringArray `gorm:"type:text[]"`
}

// State rebuilds the editable state from the snapshot.
func (q *QRCode) State() State {
	return State{
		Type:   q.Type,
		Fields: q.Data.Clone(),
		Style:  q.Styles,
	}
}
