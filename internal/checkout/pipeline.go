package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/cart"
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/payment"
	"github.com/harshava123/powderlegacy/internal/session"
	pkgerrors "github.com/harshava123/powderlegacy/pkg/errors"
)

// Pipeline drives the checkout wizard: address capture, delivery selection,
// payment initiation. Each completed step persists its slice of the order
// draft to the session store immediately, so navigating back and forth or
// reloading never loses already-entered data.
type Pipeline struct {
	sessions    session.Store
	carts       *cart.Store
	integration payment.Integration
	minTotal    int64 // provider minimum chargeable amount, rupees
	logger      *zap.Logger
}

func NewPipeline(sessions session.Store, carts *cart.Store, integration payment.Integration, minTotal int64, logger *zap.Logger) *Pipeline {
	if minTotal < 1 {
		minTotal = 1
	}
	return &Pipeline{
		sessions:    sessions,
		carts:       carts,
		integration: integration,
		minTotal:    minTotal,
		logger:      logger,
	}
}

// Draft loads the accumulated order draft for a session. Missing steps come
// back nil.
func (p *Pipeline) Draft(ctx context.Context, sessionID string) (*domain.OrderDraft, error) {
	draft := &domain.OrderDraft{}

	var addr domain.ShippingAddress
	err := p.sessions.Get(ctx, sessionID, session.KeyShippingAddress, &addr)
	if err == nil {
		draft.Address = &addr
	} else if !errors.Is(err, session.ErrNotFound) {
		return nil, err
	}

	var delivery domain.DeliverySelection
	err = p.sessions.Get(ctx, sessionID, session.KeyDeliveryInfo, &delivery)
	if err == nil {
		draft.Delivery = &delivery
	} else if !errors.Is(err, session.ErrNotFound) {
		return nil, err
	}

	return draft, nil
}

// State derives where the session is in the wizard from the persisted draft.
func (p *Pipeline) State(ctx context.Context, sessionID string) (domain.CheckoutState, error) {
	draft, err := p.Draft(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if draft.Address == nil {
		return domain.CheckoutStateAddressPending, nil
	}
	if draft.Delivery == nil {
		return domain.CheckoutStateAddressComplete, nil
	}

	var paymentState string
	err = p.sessions.Get(ctx, sessionID, session.KeyPaymentState, &paymentState)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return "", err
	}
	if paymentState == string(domain.CheckoutStatePaymentInitiated) {
		return domain.CheckoutStatePaymentInitiated, nil
	}
	return domain.CheckoutStateDeliveryComplete, nil
}

// SubmitAddress validates and persists the shipping address. Before allowing
// the transition it re-validates every tracked cart line against its stock
// ceiling - stock may have changed since the items were added.
func (p *Pipeline) SubmitAddress(ctx context.Context, sessionID, userID string, addr domain.ShippingAddress) error {
	if err := validateAddress(&addr); err != nil {
		return err
	}

	currentCart, err := p.carts.Get(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if len(currentCart.Items) == 0 {
		return &pkgerrors.ErrValidation{Message: "cart is empty"}
	}

	var offenders []string
	for _, it := range currentCart.Items {
		if it.MaxStock > 0 && it.Quantity > it.MaxStock {
			offenders = append(offenders,
				fmt.Sprintf("only %d units available for %s (%s)", it.MaxStock, it.Name, it.Size))
		}
	}
	if len(offenders) > 0 {
		return &pkgerrors.ErrStockConflict{Items: offenders}
	}

	if addr.Country == "" {
		addr.Country = "India"
	}
	return p.sessions.Set(ctx, sessionID, session.KeyShippingAddress, &addr)
}

// SelectDelivery persists the chosen tier with its flat fee. The address step
// must be complete first.
func (p *Pipeline) SelectDelivery(ctx context.Context, sessionID string, tier domain.DeliveryTier, instructions string) (*domain.DeliverySelection, error) {
	state, err := p.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.CanTransitionTo(domain.CheckoutStateDeliveryComplete) {
		return nil, &pkgerrors.ErrInvalidStateTransition{
			From: state.String(),
			To:   domain.CheckoutStateDeliveryComplete.String(),
		}
	}

	option := domain.DeliveryOptionFor(tier)
	if option == nil {
		return nil, &pkgerrors.ErrValidation{
			Message: "unknown delivery option",
			Fields:  map[string]string{"tier": string(tier)},
		}
	}

	selection := &domain.DeliverySelection{
		Tier:         option.Tier,
		Fee:          option.Fee,
		Instructions: instructions,
	}
	if err := p.sessions.Set(ctx, sessionID, session.KeyDeliveryInfo, selection); err != nil {
		return nil, err
	}
	return selection, nil
}

// InitiatePayment computes the grand total and hands off to the configured
// payment integration. Totals below the provider minimum are rejected back to
// the user, not crashed on.
func (p *Pipeline) InitiatePayment(ctx context.Context, sessionID, userID string) (*payment.Initiation, error) {
	state, err := p.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.CanTransitionTo(domain.CheckoutStatePaymentInitiated) {
		return nil, &pkgerrors.ErrInvalidStateTransition{
			From: state.String(),
			To:   domain.CheckoutStatePaymentInitiated.String(),
		}
	}

	draft, err := p.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	currentCart, err := p.carts.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	grandTotal := currentCart.Total() - currentCart.Savings() + draft.Delivery.Fee
	if grandTotal < p.minTotal {
		return nil, &pkgerrors.ErrValidation{
			Message: fmt.Sprintf("order total must be at least ₹%d", p.minTotal),
		}
	}

	contact := payment.Contact{
		Name:  draft.Address.FullName(),
		Email: draft.Address.Email,
		Phone: draft.Address.Phone,
	}
	initiation, err := p.integration.Initiate(ctx, grandTotal, contact)
	if err != nil {
		// Provider errors surface to the user; draft and cart stay intact
		// for retry.
		return nil, err
	}

	if err := p.sessions.Set(ctx, sessionID, session.KeyPaymentState, string(domain.CheckoutStatePaymentInitiated)); err != nil {
		p.logger.Warn("Failed to persist payment state", zap.Error(err), zap.String("session_id", sessionID))
	}

	p.logger.Info("Payment initiated",
		zap.String("session_id", sessionID),
		zap.Int64("grand_total", grandTotal),
		zap.String("method", string(initiation.Method)),
	)
	return initiation, nil
}

// AbandonPayment returns the session to the delivery step without touching
// the draft; the user dismissed or cancelled the payment UI.
func (p *Pipeline) AbandonPayment(ctx context.Context, sessionID string) error {
	return p.sessions.Delete(ctx, sessionID, session.KeyPaymentState)
}

// GrandTotal computes cart total - savings + delivery fee for the session.
func (p *Pipeline) GrandTotal(ctx context.Context, sessionID, userID string) (int64, error) {
	draft, err := p.Draft(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	currentCart, err := p.carts.Get(ctx, sessionID, userID)
	if err != nil {
		return 0, err
	}
	var fee int64
	if draft.Delivery != nil {
		fee = draft.Delivery.Fee
	}
	return currentCart.Total() - currentCart.Savings() + fee, nil
}

func validateAddress(addr *domain.ShippingAddress) error {
	fields := map[string]string{}
	required := map[string]string{
		"first_name": addr.FirstName,
		"last_name":  addr.LastName,
		"email":      addr.Email,
		"phone":      addr.Phone,
		"address":    addr.Address,
		"city":       addr.City,
		"state":      addr.State,
		"pincode":    addr.Pincode,
	}
	for name, value := range required {
		if value == "" {
			fields[name] = "required"
		}
	}
	if len(fields) > 0 {
		return &pkgerrors.ErrValidation{Message: "address is incomplete", Fields: fields}
	}
	return nil
}
