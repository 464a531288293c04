package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// AnonymousSession keeps codes built before the user has an account, keyed by email.
type AnonymousSession struct {
	ID          string       `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time    `gorm:"not null"`
	Email       string       `gorm:"index"`
	Codes       SessionCodes `gorm:"column:session_data;type:jsonb"`
	ConvertedAt *time.Time
	UserID      string
}

// SessionCodes is the jsonb payload of an anonymous session.
type SessionCodes []State

func (c SessionCodes) Value() (driver.Value, error) {
	return json.Marshal(struct {
		QRCodes []State `json:"qr_codes"`
	}{QRCodes: c})
}

func (c *SessionCodes) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("session codes: unsupported scan source")
	}
	var wrapper struct {
		QRCodes []State `json:"qr_codes"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	*c = wrapper.QRCodes
	return nil
}
