package cart

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/repository"
	"github.com/harshava123/powderlegacy/internal/session"
	pkgerrors "github.com/harshava123/powderlegacy/pkg/errors"
)

// Store is the authoritative cart state per session. Every mutation writes
// the serialized snapshot to the session store before returning, so a reload
// immediately after any operation loses nothing. When an authenticated
// identity is attached, the snapshot is additionally mirrored to the remote
// store best-effort; mirror failures are logged and swallowed.
type Store struct {
	sessions session.Store
	mirror   repository.CartMirrorRepository // nil when no remote store is configured
	logger   *zap.Logger
	events   broker
	sfg      singleflight.Group // collapses concurrent hydrations per session
}

// NewStore creates a cart store. mirror may be nil.
func NewStore(sessions session.Store, mirror repository.CartMirrorRepository, logger *zap.Logger) *Store {
	return &Store{
		sessions: sessions,
		mirror:   mirror,
		logger:   logger,
	}
}

// Subscribe registers a consumer of cart mutation events.
func (s *Store) Subscribe(fn func(Event)) {
	s.events.subscribe(fn)
}

// Get hydrates the cart. When an authenticated identity is present and this
// session has not yet adopted that user's remote snapshot, the mirror wins
// over whatever the session holds; after adoption the session snapshot is
// authoritative, so fresh local mutations are never clobbered by the
// async mirror write racing behind them.
func (s *Store) Get(ctx context.Context, sessionID, userID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID+"\x00"+userID, func() (interface{}, error) {
		if userID != "" && s.mirror != nil {
			adopted, aErr := s.adoptMirror(ctx, sessionID, userID)
			if aErr != nil {
				return nil, aErr
			}
			if adopted != nil {
				return adopted, nil
			}
		}

		var cart domain.Cart
		err := s.sessions.Get(ctx, sessionID, session.KeyCartItems, &cart.Items)
		if err == nil {
			return &cart, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return nil, err
		}
		return &domain.Cart{}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// adoptMirror pulls the user's remote snapshot into the session the first
// time this identity is seen on the session. A session key records the
// adopted identity so a returning user replaces the guest cart exactly once.
// Returns nil when the session snapshot should be used instead.
func (s *Store) adoptMirror(ctx context.Context, sessionID, userID string) (*domain.Cart, error) {
	var owner string
	err := s.sessions.Get(ctx, sessionID, session.KeyCartOwner, &owner)
	if err == nil && owner == userID {
		return nil, nil
	}
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return nil, err
	}

	if err := s.sessions.Set(ctx, sessionID, session.KeyCartOwner, userID); err != nil {
		return nil, err
	}

	mirrored, mErr := s.mirror.Get(ctx, userID)
	if mErr != nil {
		// No remote doc: keep the session cart; the next save mirrors it.
		var nf *pkgerrors.ErrNotFound
		if !errors.As(mErr, &nf) {
			s.logger.Warn("Cart mirror read failed", zap.Error(mErr), zap.String("user_id", userID))
		}
		return nil, nil
	}
	if err := s.sessions.Set(ctx, sessionID, session.KeyCartItems, mirrored.Items); err != nil {
		return nil, err
	}
	return mirrored, nil
}

// AddItem merges a composed line item into the cart. An existing
// (product, size) line grows by the requested quantity, clamped to the
// tracked stock ceiling; otherwise the line is appended.
func (s *Store) AddItem(ctx context.Context, sessionID, userID string, item domain.CartLineItem) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.Find(item.ProductID, item.Size); i >= 0 {
		merged := cart.Items[i].Quantity + item.Quantity
		if cart.Items[i].MaxStock > 0 && merged > cart.Items[i].MaxStock {
			merged = cart.Items[i].MaxStock
		}
		cart.Items[i].Quantity = merged
		item = cart.Items[i]
	} else {
		cart.Items = append(cart.Items, item)
	}

	if err := s.save(ctx, sessionID, userID, cart); err != nil {
		return nil, err
	}
	s.events.publish(Event{Type: EventItemAdded, SessionID: sessionID, Item: &item})
	return cart, nil
}

// UpdateQuantity sets a line's quantity directly; zero or below removes the
// line. Manual updates are not clamped to stock, only the add path clamps.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, userID string, productID int64, size string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, userID, productID, size)
	}

	cart, err := s.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	i := cart.Find(productID, size)
	if i < 0 {
		return cart, nil
	}
	cart.Items[i].Quantity = quantity

	if err := s.save(ctx, sessionID, userID, cart); err != nil {
		return nil, err
	}
	item := cart.Items[i]
	s.events.publish(Event{Type: EventItemUpdated, SessionID: sessionID, Item: &item})
	return cart, nil
}

// RemoveItem drops the matching line; removing an absent line is a no-op.
func (s *Store) RemoveItem(ctx context.Context, sessionID, userID string, productID int64, size string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	i := cart.Find(productID, size)
	if i < 0 {
		return cart, nil
	}
	removed := cart.Items[i]
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := s.save(ctx, sessionID, userID, cart); err != nil {
		return nil, err
	}
	s.events.publish(Event{Type: EventItemRemoved, SessionID: sessionID, Item: &removed})
	return cart, nil
}

// Clear empties the cart, used after order finalization and on explicit clear.
func (s *Store) Clear(ctx context.Context, sessionID, userID string) error {
	cart := &domain.Cart{Items: []domain.CartLineItem{}}
	if err := s.save(ctx, sessionID, userID, cart); err != nil {
		return err
	}
	s.events.publish(Event{Type: EventCleared, SessionID: sessionID})
	return nil
}

// save writes the session snapshot synchronously, then mirrors remotely in
// the background. Last write wins on the mirror; no merge is attempted.
func (s *Store) save(ctx context.Context, sessionID, userID string, cart *domain.Cart) error {
	if cart.Items == nil {
		cart.Items = []domain.CartLineItem{}
	}
	if err := s.sessions.Set(ctx, sessionID, session.KeyCartItems, cart.Items); err != nil {
		return err
	}

	if userID != "" && s.mirror != nil {
		snapshot := &domain.Cart{Items: append([]domain.CartLineItem(nil), cart.Items...)}
		go func() {
			mctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.mirror.Set(mctx, userID, snapshot); err != nil {
				s.logger.Warn("Cart mirror write failed", zap.Error(err), zap.String("user_id", userID))
			}
		}()
	}
	return nil
}
