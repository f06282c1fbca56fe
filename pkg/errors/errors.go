package errors

import (
	"fmt"
	"strings"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrValidation is returned when a checkout step receives incomplete input.
// It blocks the step transition and is surfaced inline to the user.
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrStockConflict is returned when cart quantities exceed tracked stock at
// the address step. Items carries a user-facing description per offender.
type ErrStockConflict struct {
	Items []string
}

func (e *ErrStockConflict) Error() string {
	return fmt.Sprintf("insufficient stock for: %s", strings.Join(e.Items, "; "))
}

// ErrPayment is returned when the payment provider reports a failure or the
// user cancels. The draft and cart are left intact for retry.
type ErrPayment struct {
	Code        string
	Description string
}

func (e *ErrPayment) Error() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Code != "" {
		return fmt.Sprintf("payment failed: %s", e.Code)
	}
	return "payment failed"
}

// UserMessage returns the message shown to the customer. Razorpay rejects
// international cards on unconfigured accounts with a description that needs
// a more actionable hint than the raw provider text.
func (e *ErrPayment) UserMessage() string {
	if strings.Contains(strings.ToLower(e.Description), "international cards are not supported") {
		return "International cards are disabled on this account. Please use a domestic card or enable international cards in the Razorpay dashboard."
	}
	if e.Description != "" {
		return e.Description
	}
	return "Payment failed. Please try again."
}

// ErrInvalidStateTransition is returned when a checkout step is attempted out
// of order
type ErrInvalidStateTransition struct {
	From string
	To   string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}
