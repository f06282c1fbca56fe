package domain

// CheckoutState represents where a checkout session is in the wizard
type CheckoutState string

const (
	// ADDRESS_PENDING - no address captured yet
	CheckoutStateAddressPending CheckoutState = "ADDRESS_PENDING"
	// ADDRESS_COMPLETE - address captured, delivery tier not chosen
	CheckoutStateAddressComplete CheckoutState = "ADDRESS_COMPLETE"
	// DELIVERY_COMPLETE - delivery tier chosen, payment not started
	CheckoutStateDeliveryComplete CheckoutState = "DELIVERY_COMPLETE"
	// PAYMENT_INITIATED - handed off to the payment provider
	CheckoutStatePaymentInitiated CheckoutState = "PAYMENT_INITIATED"
	// PAYMENT_CONFIRMED - terminal success, order finalized
	CheckoutStatePaymentConfirmed CheckoutState = "PAYMENT_CONFIRMED"
	// PAYMENT_ABANDONED - user dismissed the payment UI; draft survives
	CheckoutStatePaymentAbandoned CheckoutState = "PAYMENT_ABANDONED"
)

func (s CheckoutState) String() string {
	return string(s)
}

// IsTerminal reports whether the checkout attempt reached an outcome.
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStatePaymentConfirmed
}

// CanTransitionTo checks if a state transition is valid
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	switch s {
	case CheckoutStateAddressPending:
		return next == CheckoutStateAddressComplete
	case CheckoutStateAddressComplete:
		// Re-submitting the address is allowed; the draft just overwrites.
		return next == CheckoutStateAddressComplete ||
			next == CheckoutStateDeliveryComplete
	case CheckoutStateDeliveryComplete:
		return next == CheckoutStateAddressComplete ||
			next == CheckoutStateDeliveryComplete ||
			next == CheckoutStatePaymentInitiated
	case CheckoutStatePaymentInitiated:
		return next == CheckoutStatePaymentConfirmed ||
			next == CheckoutStatePaymentAbandoned
	case CheckoutStatePaymentAbandoned:
		// Abandonment returns the user to the delivery step with the draft intact.
		return next == CheckoutStateDeliveryComplete ||
			next == CheckoutStatePaymentInitiated
	default:
		return false
	}
}

// PaymentMethod tags which integration mode produced the payment
type PaymentMethod string

const (
	PaymentMethodEmbedded   PaymentMethod = "embedded-checkout"
	PaymentMethodHostedLink PaymentMethod = "hosted-payment-link"
)

// IsValid checks if the payment method is one of the supported modes
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodEmbedded || m == PaymentMethodHostedLink
}

// DeliveryTier is one of the fixed delivery options, each with a flat fee
type DeliveryTier string

const (
	DeliveryTierStandard DeliveryTier = "standard"
	DeliveryTierExpress  DeliveryTier = "express"
	DeliveryTierPremium  DeliveryTier = "premium"
)

// DeliveryOption describes a tier for display and fee lookup.
type DeliveryOption struct {
	Tier        DeliveryTier `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Fee         int64        `json:"price"`
}

// DeliveryOptions is the fixed, finite set of delivery tiers.
var DeliveryOptions = []DeliveryOption{
	{Tier: DeliveryTierStandard, Name: "Standard Delivery", Description: "5-7 business days", Fee: 0},
	{Tier: DeliveryTierExpress, Name: "Express Delivery", Description: "2-3 business days", Fee: 99},
	{Tier: DeliveryTierPremium, Name: "Premium Delivery", Description: "1-2 business days", Fee: 199},
}

// DeliveryOptionFor returns the option for a tier, or nil for an unknown tier.
func DeliveryOptionFor(tier DeliveryTier) *DeliveryOption {
	for i := range DeliveryOptions {
		if DeliveryOptions[i].Tier == tier {
			return &DeliveryOptions[i]
		}
	}
	return nil
}
