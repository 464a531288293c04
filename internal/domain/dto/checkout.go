package dto

import "github.com/Badsnus/qrgen-studio/internal/domain/entity"

// CheckoutMetadata is the snapshot sent to the payment backend. It describes what is
// being bought; the backend never sees the editable state.
type CheckoutMetadata struct {
	Type       string `json:"qr_type"`
	Payload    string `json:"qr_payload"`
	DotPattern string `json:"dots_style"`
	Foreground string `json:"fg_color"`
	Background string `json:"bg_color"`
	HasLogo    bool   `json:"has_logo"`
	Gradient   bool   `json:"gradient"`
}

func NewCheckoutMetadata(state entity.State, payload string) CheckoutMetadata {
	return CheckoutMetadata{
		Type:       string(state.Type),
		Payload:    payload,
		DotPattern: string(state.Style.DotPattern),
		Foreground: state.Style.Foreground,
		Background: state.Style.EffectiveBackground(),
		HasLogo:    state.Style.Logo.Image != "",
		Gradient:   state.Style.Gradient.Enabled,
	}
}

// CheckoutRequest is what the payment backend needs to open a checkout.
type CheckoutRequest struct {
	Email      string
	SuccessURL string
	CancelURL  string
	Metadata   CheckoutMetadata
}

type CheckoutSession struct {
	ID  string
	URL string
}

type PaymentStatus struct {
	Paid   bool
	Status string
}
