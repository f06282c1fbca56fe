package repository

import (
	"context"

	"github.com/harshava123/powderlegacy/internal/domain"
)

// OrderRepository defines order data access methods. Upsert merges by
// order_id so a duplicate payment confirmation never creates a second row.
type OrderRepository interface {
	Upsert(ctx context.Context, order *domain.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Order, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error)
}

// CartMirrorRepository defines the remote cart mirror keyed by authenticated
// identity. Mirroring is best-effort; the session store remains the
// durability guarantee of record.
type CartMirrorRepository interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Order      OrderRepository
	CartMirror CartMirrorRepository
}
