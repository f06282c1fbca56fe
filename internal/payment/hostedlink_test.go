package payment

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/payment/razorpay"
	pkgerrors "github.com/harshava123/powderlegacy/pkg/errors"
)

type mockLinkCreator struct {
	req  razorpay.CreateLinkRequest
	link *razorpay.PaymentLink
	err  error
}

func (m *mockLinkCreator) CreatePaymentLink(_ context.Context, req razorpay.CreateLinkRequest) (*razorpay.PaymentLink, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return m.link, nil
}

func contact() Contact {
	return Contact{Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210"}
}

func TestHostedLinkBuildsPrefilledPageURL(t *testing.T) {
	h := NewHostedLink(config.RazorpayConfig{
		PaymentPageURL: "https://pages.razorpay.com/powderlegacy",
	}, "https://shop.example.com", nil)

	initiation, err := h.Initiate(context.Background(), 1299, contact())
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentMethodHostedLink, initiation.Method)
	assert.Nil(t, initiation.Checkout)

	u, err := url.Parse(initiation.PaymentLinkURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "asha@example.com", q.Get("prefill[email]"))
	assert.Equal(t, "9876543210", q.Get("prefill[contact]"))
	assert.Equal(t, "Asha Rao", q.Get("prefill[name]"))
	assert.Equal(t, "1299", q.Get("amount"))
}

func TestHostedLinkPageURLKeepsExistingQuery(t *testing.T) {
	h := NewHostedLink(config.RazorpayConfig{
		PaymentPageURL: "https://pages.razorpay.com/powderlegacy?ref=site",
	}, "https://shop.example.com", nil)

	initiation, err := h.Initiate(context.Background(), 500, Contact{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(initiation.PaymentLinkURL, "https://pages.razorpay.com/powderlegacy?ref=site&"))
	assert.Equal(t, 1, strings.Count(initiation.PaymentLinkURL, "?"))
}

func TestHostedLinkPageURLEnforcesMinimumAmount(t *testing.T) {
	h := NewHostedLink(config.RazorpayConfig{
		PaymentPageURL: "https://pages.razorpay.com/powderlegacy",
	}, "https://shop.example.com", nil)

	initiation, err := h.Initiate(context.Background(), 0, Contact{})
	require.NoError(t, err)
	u, _ := url.Parse(initiation.PaymentLinkURL)
	assert.Equal(t, "1", u.Query().Get("amount"))
}

func TestHostedLinkCreatesPaymentLink(t *testing.T) {
	creator := &mockLinkCreator{link: &razorpay.PaymentLink{
		ID:       "plink_abc",
		ShortURL: "https://rzp.io/l/abc",
		OrderID:  "order_xyz",
	}}
	h := NewHostedLink(config.RazorpayConfig{}, "https://shop.example.com/", creator)

	initiation, err := h.Initiate(context.Background(), 1299, contact())
	require.NoError(t, err)

	assert.Equal(t, "https://rzp.io/l/abc", initiation.PaymentLinkURL)
	assert.Equal(t, "plink_abc", initiation.PaymentLinkID)
	assert.Equal(t, "order_xyz", initiation.ProviderOrderID)

	// paise conversion and callback wiring
	assert.Equal(t, int64(129900), creator.req.Amount)
	assert.Equal(t, "https://shop.example.com/payment/callback", creator.req.CallbackURL)
	assert.Equal(t, "get", creator.req.CallbackMethod)
	assert.Equal(t, "Asha Rao", creator.req.Customer.Name)
	assert.True(t, creator.req.Notify.SMS)
	assert.True(t, creator.req.Notify.Email)
}

func TestHostedLinkMapsProviderError(t *testing.T) {
	creator := &mockLinkCreator{err: &razorpay.Error{
		StatusCode:  400,
		Code:        "BAD_REQUEST_ERROR",
		Description: "international cards are not supported",
	}}
	h := NewHostedLink(config.RazorpayConfig{}, "https://shop.example.com", creator)

	_, err := h.Initiate(context.Background(), 1299, contact())
	var pe *pkgerrors.ErrPayment
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "BAD_REQUEST_ERROR", pe.Code)
	assert.Contains(t, pe.UserMessage(), "International cards are disabled")
}

func TestEmbeddedCheckoutOptions(t *testing.T) {
	e := NewEmbedded(config.RazorpayConfig{KeyID: "rzp_test_key"})

	initiation, err := e.Initiate(context.Background(), 1299, contact())
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentMethodEmbedded, initiation.Method)

	opts := initiation.Checkout
	require.NotNil(t, opts)
	assert.Equal(t, "rzp_test_key", opts.KeyID)
	assert.Equal(t, int64(129900), opts.Amount)
	assert.Equal(t, "INR", opts.Currency)
	assert.Equal(t, "The Powder Legacy", opts.Name)
	assert.Equal(t, "#15803d", opts.ThemeColor)
	assert.Equal(t, "asha@example.com", opts.Prefill.Email)
}
