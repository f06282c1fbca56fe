package session

import (
	"context"
	"errors"
)

// Well-known keys inside a session. The same names the web client used in
// localStorage, so a migrated session reads naturally.
const (
	KeyCartItems       = "cart_items"
	KeyCartOwner       = "cart_owner"
	KeyShippingAddress = "shippingAddress"
	KeyDeliveryInfo    = "deliveryInfo"
	KeyPaymentState    = "paymentState"
)

// ErrNotFound is returned when a session has no value under the key.
var ErrNotFound = errors.New("session key not found")

// Store is the durable per-session key-value storage. It is the durability
// guarantee of record for the cart and the checkout draft: writes complete
// before the mutating call returns.
type Store interface {
	Get(ctx context.Context, sessionID, key string, out interface{}) error
	Set(ctx context.Context, sessionID, key string, value interface{}) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
}
