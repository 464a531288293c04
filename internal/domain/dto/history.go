package dto

import (
	"time"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

// SavedCode is a history entry as listed to the user.
type SavedCode struct {
	ID               string
	Type             entity.QRType
	Label            string
	Payload          string
	State            entity.State
	CreatedAt        time.Time
	DownloadCount    int
	LastDownloadedAt *time.Time
	Formats          []string
}

func NewSavedCodeFromEntity(code entity.QRCode) SavedCode {
	label := string(code.Type)
	if info, ok := code.Type.Info(); ok {
		label = info.Label
	}
	return SavedCode{
		ID:               code.ID,
		Type:             code.Type,
		Label:            label,
		Payload:          code.Payload,
		State:            code.State(),
		CreatedAt:        code.CreatedAt,
		DownloadCount:    code.DownloadCount,
		LastDownloadedAt: code.LastDownloadedAt,
		Formats:          code.Formats,
	}
}
