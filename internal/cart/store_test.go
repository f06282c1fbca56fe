package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/session"
	"github.com/harshava123/powderlegacy/pkg/errors"
)

// mockMirror is an in-memory stand-in for the remote cart mirror.
type mockMirror struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
	fail  bool
}

func newMockMirror() *mockMirror {
	return &mockMirror{carts: make(map[string]*domain.Cart)}
}

func (m *mockMirror) Get(_ context.Context, userID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[userID]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: userID}
	}
	return c, nil
}

func (m *mockMirror) Set(_ context.Context, userID string, c *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return assert.AnError
	}
	m.carts[userID] = c
	return nil
}

func (m *mockMirror) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
	return nil
}

func newTestStore() *Store {
	return NewStore(session.NewMemoryStore(), nil, zap.NewNop())
}

func line(productID int64, size string, qty, maxStock int, price int64) domain.CartLineItem {
	return domain.CartLineItem{
		ProductID: productID,
		Size:      size,
		Name:      "Product",
		Quantity:  qty,
		MaxStock:  maxStock,
		Price:     price,
	}
}

func TestAddItemAppendsNewLine(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	cart, err := store.AddItem(ctx, "s1", "", line(1, "250g", 2, 50, 250))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", "", line(1, "250g", 2, 50, 250))
	require.NoError(t, err)
	cart, err := store.AddItem(ctx, "s1", "", line(1, "250g", 3, 50, 250))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItemDifferentSizesStaySeparate(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", "", line(1, "250g", 1, 50, 250))
	require.NoError(t, err)
	cart, err := store.AddItem(ctx, "s1", "", line(1, "500g", 1, 50, 450))
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
}

func TestAddItemClampsMergedQuantityToStock(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	// 3 then 4 against a ceiling of 5 ends at exactly 5
	_, err := store.AddItem(ctx, "s1", "", line(1, "250g", 3, 5, 250))
	require.NoError(t, err)
	cart, err := store.AddItem(ctx, "s1", "", line(1, "250g", 4, 5, 250))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestUpdateQuantitySetsDirectly(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", "", line(1, "250g", 2, 5, 250))
	require.NoError(t, err)

	// Manual updates bypass the clamp
	cart, err := store.UpdateQuantity(ctx, "s1", "", 1, "250g", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, cart.Items[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", "", line(1, "250g", 2, 5, 250))
	require.NoError(t, err)

	cart, err := store.UpdateQuantity(ctx, "s1", "", 1, "250g", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", "", line(1, "250g", 2, 5, 250))
	require.NoError(t, err)

	cart, err := store.RemoveItem(ctx, "s1", "", 1, "250g")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Removing again succeeds with the unchanged cart
	cart, err = store.RemoveItem(ctx, "s1", "", 1, "250g")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartTotalIsIntegerExact(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", "", line(7, "200g", 3, 70, 400))
	require.NoError(t, err)
	cart, err := store.AddItem(ctx, "s1", "", line(10, "50g", 1, 80, 400))
	require.NoError(t, err)

	assert.Equal(t, int64(1600), cart.Total())
	assert.Equal(t, 4, cart.ItemCount())
	assert.Equal(t, int64(0), cart.Savings())
}

func TestCartSurvivesRehydration(t *testing.T) {
	sessions := session.NewMemoryStore()
	ctx := context.Background()

	first := NewStore(sessions, nil, zap.NewNop())
	_, err := first.AddItem(ctx, "s1", "", line(1, "250g", 2, 50, 250))
	require.NoError(t, err)

	// A fresh store over the same session data sees the same cart
	second := NewStore(sessions, nil, zap.NewNop())
	cart, err := second.Get(ctx, "s1", "")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestGetAdoptsMirrorOnFirstTouch(t *testing.T) {
	mirror := newMockMirror()
	mirror.carts["user-1"] = &domain.Cart{Items: []domain.CartLineItem{line(1, "250g", 2, 50, 250)}}

	store := NewStore(session.NewMemoryStore(), mirror, zap.NewNop())
	cart, err := store.Get(context.Background(), "s1", "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	// The adopted snapshot is now in the session store
	cart, err = store.Get(context.Background(), "s1", "user-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestGetPrefersMirrorWhenIdentityAppears(t *testing.T) {
	mirror := newMockMirror()
	mirror.carts["user-1"] = &domain.Cart{Items: []domain.CartLineItem{line(99, "250g", 2, 50, 250)}}

	store := NewStore(session.NewMemoryStore(), mirror, zap.NewNop())
	ctx := context.Background()

	// Guest builds a cart first, then their identity shows up mid-session.
	// The remote snapshot from their other device replaces the guest cart.
	_, err := store.AddItem(ctx, "s1", "", line(1, "250g", 1, 50, 250))
	require.NoError(t, err)

	cart, err := store.Get(ctx, "s1", "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(99), cart.Items[0].ProductID)

	// The adopted snapshot replaced the session one
	cart, err = store.Get(ctx, "s1", "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(99), cart.Items[0].ProductID)
}

func TestAdoptionHappensOncePerIdentity(t *testing.T) {
	mirror := newMockMirror()
	mirror.carts["user-1"] = &domain.Cart{Items: []domain.CartLineItem{line(99, "250g", 2, 50, 250)}}

	store := NewStore(session.NewMemoryStore(), mirror, zap.NewNop())
	ctx := context.Background()

	_, err := store.Get(ctx, "s1", "user-1")
	require.NoError(t, err)

	// A local mutation after adoption is authoritative even though the
	// mirror still holds the stale pre-mutation snapshot.
	mirror.fail = true
	_, err = store.UpdateQuantity(ctx, "s1", "user-1", 99, "250g", 7)
	require.NoError(t, err)

	cart, err := store.Get(ctx, "s1", "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestGetKeepsGuestCartWhenMirrorHasNoDoc(t *testing.T) {
	store := NewStore(session.NewMemoryStore(), newMockMirror(), zap.NewNop())
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", "", line(1, "250g", 1, 50, 250))
	require.NoError(t, err)

	cart, err := store.Get(ctx, "s1", "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(1), cart.Items[0].ProductID)
}

func TestMirrorFailureDoesNotFailMutation(t *testing.T) {
	mirror := newMockMirror()
	mirror.fail = true

	store := NewStore(session.NewMemoryStore(), mirror, zap.NewNop())
	cart, err := store.AddItem(context.Background(), "s1", "user-1", line(1, "250g", 1, 50, 250))
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	// give the background mirror write a moment to run and be swallowed
	time.Sleep(20 * time.Millisecond)
}

func TestClearEmptiesCart(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", "", line(1, "250g", 2, 50, 250))
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, "s1", ""))

	cart, err := store.Get(ctx, "s1", "")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
