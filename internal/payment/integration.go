package payment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/payment/razorpay"
)

// Contact is the prefill information handed to the provider.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CheckoutOptions are the embedded widget parameters the client opens
// Razorpay Checkout with. Amount is in paise.
type CheckoutOptions struct {
	KeyID       string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Prefill     Contact `json:"prefill"`
	ThemeColor  string  `json:"theme_color"`
}

// Initiation is the result of handing a checkout attempt to the provider.
// Exactly one of Checkout (embedded) or PaymentLinkURL (hosted) is set.
type Initiation struct {
	Method          domain.PaymentMethod `json:"method"`
	Checkout        *CheckoutOptions     `json:"checkout,omitempty"`
	PaymentLinkURL  string               `json:"payment_link_url,omitempty"`
	PaymentLinkID   string               `json:"payment_link_id,omitempty"`
	ProviderOrderID string               `json:"provider_order_id,omitempty"`
}

// Integration is one payment mode. Each Initiate eventually produces exactly
// one terminal event - a confirmed (paymentID, orderID) pair delivered to the
// confirm endpoint or callback URL, or a provider error.
type Integration interface {
	Method() domain.PaymentMethod
	Initiate(ctx context.Context, amount int64, contact Contact) (*Initiation, error)
}

// New selects the integration mode from configuration at startup.
func New(cfg config.RazorpayConfig, appURL string, logger *zap.Logger) (Integration, error) {
	switch cfg.Mode {
	case domain.PaymentMethodEmbedded:
		return NewEmbedded(cfg), nil
	case domain.PaymentMethodHostedLink:
		return NewHostedLink(cfg, appURL, razorpay.NewClient(cfg, logger)), nil
	default:
		return nil, fmt.Errorf("unsupported payment mode %q", cfg.Mode)
	}
}
