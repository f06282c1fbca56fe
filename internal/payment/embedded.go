package payment

import (
	"context"

	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/domain"
)

const (
	storefrontName  = "The Powder Legacy"
	themeColor      = "#15803d"
	descriptionText = "Order Payment"
)

// Embedded serves the in-page Razorpay Checkout widget. Initiation returns
// the widget options; the widget's success handler posts the payment id back
// synchronously, its failure handler carries the provider error.
type Embedded struct {
	keyID string
}

func NewEmbedded(cfg config.RazorpayConfig) *Embedded {
	return &Embedded{keyID: cfg.KeyID}
}

func (e *Embedded) Method() domain.PaymentMethod {
	return domain.PaymentMethodEmbedded
}

func (e *Embedded) Initiate(_ context.Context, amount int64, contact Contact) (*Initiation, error) {
	return &Initiation{
		Method: domain.PaymentMethodEmbedded,
		Checkout: &CheckoutOptions{
			KeyID:       e.keyID,
			Amount:      amount * 100, // paise
			Currency:    "INR",
			Name:        storefrontName,
			Description: descriptionText,
			Prefill:     contact,
			ThemeColor:  themeColor,
		},
	}, nil
}
