package payment

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Badsnus/qrgen-studio/internal/domain/dto"
)

const (
	createCheckoutPath = "/api/create-checkout-session"
	verifySessionPath  = "/api/verify-session/{sessionId}"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// Retries is how many times a failed call is repeated. Only network errors and 5xx
	// responses are retried.
	Retries   int
	RetryWait time.Duration
}

// Client talks to the payment backend, which owns prices, cards and webhooks.
type Client struct {
	http *resty.Client
}

type checkoutBody struct {
	SuccessURL    string               `json:"successUrl,omitempty"`
	CancelURL     string               `json:"cancelUrl,omitempty"`
	CustomerEmail string               `json:"customerEmail,omitempty"`
	Metadata      dto.CheckoutMetadata `json:"metadata"`
}

type checkoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type verifyResult struct {
	Paid   bool   `json:"paid"`
	Status string `json:"status"`
}

type apiError struct {
	Error string `json:"error"`
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 500 * time.Millisecond
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(4 * cfg.RetryWait).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	return &Client{http: client}
}

// CreateCheckout opens a checkout for the code described by req.Metadata.
func (c *Client) CreateCheckout(ctx context.Context, req dto.CheckoutRequest) (dto.CheckoutSession, error) {
	var (
		result checkoutResult
		apiErr apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(checkoutBody{
			SuccessURL:    req.SuccessURL,
			CancelURL:     req.CancelURL,
			CustomerEmail: req.Email,
			Metadata:      req.Metadata,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post(createCheckoutPath)
	if err := check(resp, err, &apiErr); err != nil {
		return dto.CheckoutSession{}, fmt.Errorf("create checkout: %w", err)
	}
	if result.URL == "" {
		return dto.CheckoutSession{}, fmt.Errorf("create checkout: backend returned no url")
	}
	return dto.CheckoutSession{ID: result.SessionID, URL: result.URL}, nil
}

// VerifySession reports whether checkout checkoutID was paid.
func (c *Client) VerifySession(ctx context.Context, checkoutID string) (dto.PaymentStatus, error) {
	var (
		result verifyResult
		apiErr apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("sessionId", checkoutID).
		SetResult(&result).
		SetError(&apiErr).
		Get(verifySessionPath)
	if err := check(resp, err, &apiErr); err != nil {
		return dto.PaymentStatus{}, fmt.Errorf("verify session %s: %w", checkoutID, err)
	}
	return dto.PaymentStatus{Paid: result.Paid, Status: result.Status}, nil
}

func check(resp *resty.Response, err error, apiErr *apiError) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		if apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status(), apiErr.Error)
		}
		return fmt.Errorf("unexpected status %s", resp.Status())
	}
	return nil
}
