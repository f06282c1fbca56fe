package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshava123/powderlegacy/internal/domain"
)

func sampleOrder() *domain.Order {
	return &domain.Order{
		OrderID:   "order_123",
		PaymentID: "pay_abc",
		Items: []domain.CartLineItem{
			{ProductID: 7, Size: "200g", Name: "Anti Hairfall", Quantity: 3, Price: 400},
			{ProductID: 10, Size: "50g", Name: "Smitha Manjan", Quantity: 1, Price: 400},
		},
		Totals: domain.OrderTotals{Subtotal: 1600, Savings: 0, DeliveryFee: 99, GrandTotal: 1699},
		Address: &domain.ShippingAddress{
			FirstName: "Asha", LastName: "Rao",
			Email: "asha@example.com", Phone: "9876543210",
			Address: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001",
		},
		PaymentMethod: domain.PaymentMethodEmbedded,
		CreatedAt:     time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderContainsOrderDetails(t *testing.T) {
	html, err := Render(sampleOrder())
	require.NoError(t, err)

	assert.Contains(t, html, "THE POWDER LEGACY")
	assert.Contains(t, html, "order_123")
	assert.Contains(t, html, "pay_abc")
	assert.Contains(t, html, "14 March 2026")
	assert.Contains(t, html, "Asha Rao")
	assert.Contains(t, html, "Anti Hairfall (200g)")
	assert.Contains(t, html, "Smitha Manjan (50g)")
	assert.Contains(t, html, "12 MG Road, Bengaluru, Karnataka 560001")
}

func TestRenderTotalsRows(t *testing.T) {
	html, err := Render(sampleOrder())
	require.NoError(t, err)

	assert.Contains(t, html, "Subtotal:")
	assert.Contains(t, html, "Savings:")
	assert.Contains(t, html, "Delivery Charges:")
	assert.Contains(t, html, "Grand Total:")
	assert.Contains(t, html, "&#8377;1699")
	// per-line total: 3 x 400
	assert.Contains(t, html, "&#8377;1200")
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render(sampleOrder())
	require.NoError(t, err)
	second, err := Render(sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderToleratesMissingOptionalFields(t *testing.T) {
	ord := sampleOrder()
	ord.PaymentID = ""
	ord.Address = nil

	html, err := Render(ord)
	require.NoError(t, err)
	assert.Contains(t, html, "N/A")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Invoice_order_123.html", Filename("order_123"))
}
