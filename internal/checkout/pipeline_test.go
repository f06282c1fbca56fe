package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/cart"
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/payment"
	"github.com/harshava123/powderlegacy/internal/session"
	pkgerrors "github.com/harshava123/powderlegacy/pkg/errors"
)

// mockIntegration records initiations instead of calling a provider.
type mockIntegration struct {
	lastAmount  int64
	lastContact payment.Contact
	err         error
}

func (m *mockIntegration) Method() domain.PaymentMethod {
	return domain.PaymentMethodEmbedded
}

func (m *mockIntegration) Initiate(_ context.Context, amount int64, contact payment.Contact) (*payment.Initiation, error) {
	m.lastAmount = amount
	m.lastContact = contact
	if m.err != nil {
		return nil, m.err
	}
	return &payment.Initiation{
		Method: domain.PaymentMethodEmbedded,
		Checkout: &payment.CheckoutOptions{
			Amount:   amount * 100,
			Currency: "INR",
		},
	}, nil
}

type pipelineFixture struct {
	sessions    *session.MemoryStore
	carts       *cart.Store
	integration *mockIntegration
	pipeline    *Pipeline
}

func newFixture(minTotal int64) *pipelineFixture {
	sessions := session.NewMemoryStore()
	carts := cart.NewStore(sessions, nil, zap.NewNop())
	integration := &mockIntegration{}
	return &pipelineFixture{
		sessions:    sessions,
		carts:       carts,
		integration: integration,
		pipeline:    NewPipeline(sessions, carts, integration, minTotal, zap.NewNop()),
	}
}

func validAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Phone:     "9876543210",
		Address:   "12 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		Pincode:   "560001",
	}
}

func addLine(t *testing.T, f *pipelineFixture, productID int64, size string, qty, maxStock int, price int64) {
	t.Helper()
	_, err := f.carts.AddItem(context.Background(), "s1", "", domain.CartLineItem{
		ProductID: productID,
		Size:      size,
		Name:      "Product",
		Quantity:  qty,
		MaxStock:  maxStock,
		Price:     price,
	})
	require.NoError(t, err)
}

func TestStateStartsAddressPending(t *testing.T) {
	f := newFixture(1)
	state, err := f.pipeline.State(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutStateAddressPending, state)
}

func TestSubmitAddressValidatesRequiredFields(t *testing.T) {
	f := newFixture(1)
	addLine(t, f, 1, "250g", 1, 50, 250)

	addr := validAddress()
	addr.Email = ""
	addr.Pincode = ""

	err := f.pipeline.SubmitAddress(context.Background(), "s1", "", addr)
	var ve *pkgerrors.ErrValidation
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "pincode")
}

func TestSubmitAddressRejectsEmptyCart(t *testing.T) {
	f := newFixture(1)
	err := f.pipeline.SubmitAddress(context.Background(), "s1", "", validAddress())
	assert.IsType(t, &pkgerrors.ErrValidation{}, err)
}

func TestSubmitAddressReportsStockConflicts(t *testing.T) {
	f := newFixture(1)
	addLine(t, f, 1, "250g", 1, 50, 250)

	// stock dropped below the held quantity after the line was added
	_, err := f.carts.UpdateQuantity(context.Background(), "s1", "", 1, "250g", 60)
	require.NoError(t, err)

	err = f.pipeline.SubmitAddress(context.Background(), "s1", "", validAddress())
	var sc *pkgerrors.ErrStockConflict
	require.ErrorAs(t, err, &sc)
	require.Len(t, sc.Items, 1)
	assert.Contains(t, sc.Items[0], "only 50 units available")
}

func TestSubmitAddressDefaultsCountry(t *testing.T) {
	f := newFixture(1)
	addLine(t, f, 1, "250g", 1, 50, 250)

	require.NoError(t, f.pipeline.SubmitAddress(context.Background(), "s1", "", validAddress()))

	draft, err := f.pipeline.Draft(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, draft.Address)
	assert.Equal(t, "India", draft.Address.Country)
}

func TestDraftSurvivesRehydration(t *testing.T) {
	f := newFixture(1)
	addLine(t, f, 1, "250g", 1, 50, 250)
	require.NoError(t, f.pipeline.SubmitAddress(context.Background(), "s1", "", validAddress()))
	_, err := f.pipeline.SelectDelivery(context.Background(), "s1", domain.DeliveryTierExpress, "ring the bell")
	require.NoError(t, err)

	// A fresh pipeline over the same session store sees the full draft
	fresh := NewPipeline(f.sessions, f.carts, f.integration, 1, zap.NewNop())
	draft, err := fresh.Draft(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, draft.Address)
	require.NotNil(t, draft.Delivery)
	assert.Equal(t, domain.DeliveryTierExpress, draft.Delivery.Tier)
	assert.Equal(t, int64(99), draft.Delivery.Fee)
	assert.Equal(t, "ring the bell", draft.Delivery.Instructions)

	state, err := fresh.State(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutStateDeliveryComplete, state)
}

func TestSelectDeliveryRequiresAddress(t *testing.T) {
	f := newFixture(1)
	_, err := f.pipeline.SelectDelivery(context.Background(), "s1", domain.DeliveryTierStandard, "")
	assert.IsType(t, &pkgerrors.ErrInvalidStateTransition{}, err)
}

func TestSelectDeliveryRejectsUnknownTier(t *testing.T) {
	f := newFixture(1)
	addLine(t, f, 1, "250g", 1, 50, 250)
	require.NoError(t, f.pipeline.SubmitAddress(context.Background(), "s1", "", validAddress()))

	_, err := f.pipeline.SelectDelivery(context.Background(), "s1", domain.DeliveryTier("overnight"), "")
	assert.IsType(t, &pkgerrors.ErrValidation{}, err)
}

func TestInitiatePaymentComputesGrandTotal(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	// 3 x 400 = 1200 subtotal, express delivery adds 99
	addLine(t, f, 7, "200g", 3, 70, 400)
	require.NoError(t, f.pipeline.SubmitAddress(ctx, "s1", "", validAddress()))
	_, err := f.pipeline.SelectDelivery(ctx, "s1", domain.DeliveryTierExpress, "")
	require.NoError(t, err)

	initiation, err := f.pipeline.InitiatePayment(ctx, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1299), f.integration.lastAmount)
	assert.Equal(t, "Asha Rao", f.integration.lastContact.Name)
	require.NotNil(t, initiation.Checkout)
	assert.Equal(t, int64(129900), initiation.Checkout.Amount)

	state, err := f.pipeline.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutStatePaymentInitiated, state)
}

func TestInitiatePaymentRejectsBelowMinimum(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	addLine(t, f, 1, "sachet", 1, 10, 0)
	require.NoError(t, f.pipeline.SubmitAddress(ctx, "s1", "", validAddress()))
	_, err := f.pipeline.SelectDelivery(ctx, "s1", domain.DeliveryTierStandard, "")
	require.NoError(t, err)

	_, err = f.pipeline.InitiatePayment(ctx, "s1", "")
	assert.IsType(t, &pkgerrors.ErrValidation{}, err)
}

func TestInitiatePaymentRequiresCompletedSteps(t *testing.T) {
	f := newFixture(1)
	_, err := f.pipeline.InitiatePayment(context.Background(), "s1", "")
	assert.IsType(t, &pkgerrors.ErrInvalidStateTransition{}, err)
}

func TestAbandonPaymentReturnsToDelivery(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	addLine(t, f, 1, "250g", 1, 50, 250)
	require.NoError(t, f.pipeline.SubmitAddress(ctx, "s1", "", validAddress()))
	_, err := f.pipeline.SelectDelivery(ctx, "s1", domain.DeliveryTierStandard, "")
	require.NoError(t, err)
	_, err = f.pipeline.InitiatePayment(ctx, "s1", "")
	require.NoError(t, err)

	require.NoError(t, f.pipeline.AbandonPayment(ctx, "s1"))

	state, err := f.pipeline.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutStateDeliveryComplete, state)

	// the draft is intact for retry
	draft, err := f.pipeline.Draft(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, draft.Address)
	assert.NotNil(t, draft.Delivery)
}

func TestProviderErrorLeavesDraftIntact(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	addLine(t, f, 1, "250g", 1, 50, 250)
	require.NoError(t, f.pipeline.SubmitAddress(ctx, "s1", "", validAddress()))
	_, err := f.pipeline.SelectDelivery(ctx, "s1", domain.DeliveryTierStandard, "")
	require.NoError(t, err)

	f.integration.err = &pkgerrors.ErrPayment{Code: "BAD_REQUEST_ERROR", Description: "payment failed"}
	_, err = f.pipeline.InitiatePayment(ctx, "s1", "")
	assert.IsType(t, &pkgerrors.ErrPayment{}, err)

	draft, dErr := f.pipeline.Draft(ctx, "s1")
	require.NoError(t, dErr)
	assert.NotNil(t, draft.Address)
	assert.NotNil(t, draft.Delivery)
}
