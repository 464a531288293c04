package entity

import "time"

type EventType string

const (
	EventQRSaved         EventType = "qr_saved"
	EventQRDownloaded    EventType = "qr_downloaded"
	EventEmailCaptured   EventType = "email_captured"
	EventCheckoutStarted EventType = "checkout_started"
)

var EventTypes = []EventType{EventQRSaved, EventQRDownloaded, EventEmailCaptured, EventCheckoutStarted}

// Event is an analytics record. Either UserID or AnonymousSessionID may be empty.
type Event struct {
	ID                 string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt          time.Time  `gorm:"not null"`
	UserID             string     `gorm:"index"`
	AnonymousSessionID string     `gorm:"index"`
	Type               EventType  `gorm:"column:event_type;not null"`
	Data               FormFields `gorm:"column:event_data;type:jsonb"`
}
