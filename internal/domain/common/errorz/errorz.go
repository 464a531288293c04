package errorz

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrNotEntitled        = errors.New("download not paid for")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrUnsupportedSize    = errors.New("unsupported export size")
	ErrPaymentUnavailable = errors.New("payment backend unavailable")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrDraftNotFound      = errors.New("draft not found")
)
