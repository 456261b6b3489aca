package payment

import (
	"context"
)

type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, request *CheckoutRequest) (*CheckoutResponse, error)
	ValidateWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
}

type CheckoutRequest struct {
	Plan          string            `json:"plan"`
	ProductName   string            `json:"product_name"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	Metadata      map[string]string `json:"metadata"`
}

type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
	CreatedAt int64  `json:"created_at"`
}

type WebhookEvent struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt int64                  `json:"created_at"`
}
