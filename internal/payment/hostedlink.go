package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/payment/razorpay"
	pkgerrors "github.com/harshava123/powderlegacy/pkg/errors"
)

// linkCreator is the slice of the Razorpay client the hosted mode needs.
type linkCreator interface {
	CreatePaymentLink(ctx context.Context, req razorpay.CreateLinkRequest) (*razorpay.PaymentLink, error)
}

// HostedLink redirects the customer to an externally hosted payment page.
// With a pre-provisioned payment page configured it builds a prefilled URL;
// otherwise it creates a one-off link through the payment-links API.
// Confirmation arrives out-of-process on the callback URL.
type HostedLink struct {
	pageURL     string
	callbackURL string
	client      linkCreator
}

func NewHostedLink(cfg config.RazorpayConfig, appURL string, client linkCreator) *HostedLink {
	return &HostedLink{
		pageURL:     cfg.PaymentPageURL,
		callbackURL: strings.TrimSuffix(appURL, "/") + "/payment/callback",
		client:      client,
	}
}

func (h *HostedLink) Method() domain.PaymentMethod {
	return domain.PaymentMethodHostedLink
}

func (h *HostedLink) Initiate(ctx context.Context, amount int64, contact Contact) (*Initiation, error) {
	if h.pageURL != "" {
		return &Initiation{
			Method:         domain.PaymentMethodHostedLink,
			PaymentLinkURL: h.buildPageURL(amount, contact),
		}, nil
	}

	req := razorpay.CreateLinkRequest{
		Amount:         amount * 100, // paise
		Currency:       "INR",
		Description:    descriptionText,
		ReminderEnable: true,
		CallbackURL:    h.callbackURL,
		CallbackMethod: "get",
	}
	req.Customer.Name = contact.Name
	req.Customer.Email = contact.Email
	req.Customer.Contact = contact.Phone
	req.Notify.SMS = contact.Phone != ""
	req.Notify.Email = contact.Email != ""

	link, err := h.client.CreatePaymentLink(ctx, req)
	if err != nil {
		var provErr *razorpay.Error
		if errors.As(err, &provErr) {
			return nil, &pkgerrors.ErrPayment{Code: provErr.Code, Description: provErr.Description}
		}
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	return &Initiation{
		Method:          domain.PaymentMethodHostedLink,
		PaymentLinkURL:  link.ShortURL,
		PaymentLinkID:   link.ID,
		ProviderOrderID: link.OrderID,
	}, nil
}

// buildPageURL appends Razorpay payment-page prefill parameters. The page
// takes the amount in whole rupees, minimum 1.
func (h *HostedLink) buildPageURL(amount int64, contact Contact) string {
	params := url.Values{}
	if contact.Email != "" {
		params.Set("prefill[email]", contact.Email)
	}
	if contact.Phone != "" {
		params.Set("prefill[contact]", contact.Phone)
	}
	if contact.Name != "" {
		params.Set("prefill[name]", contact.Name)
	}
	if amount < 1 {
		amount = 1
	}
	params.Set("amount", strconv.FormatInt(amount, 10))

	sep := "?"
	if strings.Contains(h.pageURL, "?") {
		sep = "&"
	}
	return h.pageURL + sep + params.Encode()
}
