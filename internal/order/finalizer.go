package order

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/harshava123/powderlegacy/internal/cart"
	"github.com/harshava123/powderlegacy/internal/checkout"
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/invoice"
	"github.com/harshava123/powderlegacy/internal/repository"
	"github.com/harshava123/powderlegacy/internal/session"
)

// Confirmation is what the customer sees after finalization. It carries its
// own copy of the purchased items because the cart is cleared before return.
type Confirmation struct {
	OrderID     string                `json:"order_id"`
	PaymentID   string                `json:"payment_id,omitempty"`
	Items       []domain.CartLineItem `json:"items"`
	Totals      domain.OrderTotals    `json:"totals"`
	InvoiceHTML string                `json:"-"`
}

// Finalizer turns a confirmed payment into a durable order. Persistence,
// invoicing and notification are best-effort; the customer confirmation never
// fails because a downstream collaborator is unreachable.
type Finalizer struct {
	repos    repository.Repositories
	carts    *cart.Store
	sessions session.Store
	pipeline *checkout.Pipeline
	mailer   Notifier
	method   domain.PaymentMethod
	logger   *zap.Logger

	sfg    singleflight.Group // collapses concurrent confirmations per order id
	mu     sync.Mutex
	recent map[string]*Confirmation // replay source until the async persist lands
}

// Notifier sends order emails. Satisfied by mailer.SMTPSender.
type Notifier interface {
	SendOrderEmails(order *domain.Order, invoiceHTML string) error
}

func NewFinalizer(repos repository.Repositories, carts *cart.Store, sessions session.Store, pipeline *checkout.Pipeline, mailer Notifier, method domain.PaymentMethod, logger *zap.Logger) *Finalizer {
	return &Finalizer{
		repos:    repos,
		carts:    carts,
		sessions: sessions,
		pipeline: pipeline,
		mailer:   mailer,
		method:   method,
		logger:   logger,
		recent:   make(map[string]*Confirmation),
	}
}

// Finalize records a confirmed payment. orderID may be empty, in which case a
// fallback id is generated so confirmation is never blocked on the provider
// response shape. Calling Finalize twice with the same orderID merges into a
// single order row and sends emails only once; truly concurrent duplicates
// collapse into one execution.
func (f *Finalizer) Finalize(ctx context.Context, sessionID, userID, orderID, paymentID string) (*Confirmation, error) {
	if orderID == "" {
		orderID = "order_" + uuid.New().String()
	}

	v, err, _ := f.sfg.Do(orderID, func() (interface{}, error) {
		return f.finalize(ctx, sessionID, userID, orderID, paymentID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Confirmation), nil
}

func (f *Finalizer) finalize(ctx context.Context, sessionID, userID, orderID, paymentID string) (*Confirmation, error) {
	// Finalized in this process moments ago: replay the confirmation even
	// before the async persist has landed.
	f.mu.Lock()
	cached := f.recent[orderID]
	f.mu.Unlock()
	if cached != nil {
		f.cleanup(ctx, sessionID, userID)
		return cached, nil
	}

	// A duplicate confirmation replays the outcome of the first one: same
	// row, no second email. The cart may already be empty by now, so the
	// stored record, not the session, is the source.
	if f.repos.Order != nil {
		if existing, err := f.repos.Order.GetByOrderID(ctx, orderID); err == nil && existing != nil {
			if paymentID != "" && existing.PaymentID == "" {
				existing.PaymentID = paymentID
				if uErr := f.repos.Order.Upsert(ctx, existing); uErr != nil {
					f.logger.Warn("Order payment id backfill failed",
						zap.String("order_id", orderID),
						zap.Error(uErr))
				}
			}
			f.cleanup(ctx, sessionID, userID)
			invoiceHTML, rErr := invoice.Render(existing)
			if rErr != nil {
				f.logger.Warn("Invoice rendering failed",
					zap.String("order_id", orderID),
					zap.Error(rErr))
			}
			return &Confirmation{
				OrderID:     existing.OrderID,
				PaymentID:   existing.PaymentID,
				Items:       existing.Items,
				Totals:      existing.Totals,
				InvoiceHTML: invoiceHTML,
			}, nil
		}
	}

	ord, err := f.buildOrder(ctx, sessionID, userID, orderID, paymentID)
	if err != nil {
		return nil, err
	}

	invoiceHTML, rErr := invoice.Render(ord)
	if rErr != nil {
		f.logger.Warn("Invoice rendering failed",
			zap.String("order_id", orderID),
			zap.Error(rErr))
	}

	conf := &Confirmation{
		OrderID:     ord.OrderID,
		PaymentID:   ord.PaymentID,
		Items:       ord.Items,
		Totals:      ord.Totals,
		InvoiceHTML: invoiceHTML,
	}
	f.remember(orderID, conf)

	// Persistence and notification run detached from the request: the
	// customer sees the confirmation as soon as the payment itself is
	// confirmed, not after the slowest downstream collaborator.
	if f.repos.Order != nil {
		go func() {
			pctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := f.repos.Order.Upsert(pctx, ord); err != nil {
				f.logger.Warn("Order persistence failed, confirmation continues",
					zap.String("order_id", orderID),
					zap.Error(err))
			}
		}()
	}
	if f.mailer != nil {
		go func() {
			if err := f.mailer.SendOrderEmails(ord, invoiceHTML); err != nil {
				f.logger.Warn("Order notification failed, confirmation continues",
					zap.String("order_id", orderID),
					zap.Error(err))
			}
		}()
	}

	f.cleanup(ctx, sessionID, userID)

	f.logger.Info("Order finalized",
		zap.String("order_id", orderID),
		zap.String("payment_id", paymentID),
		zap.Int("items", len(ord.Items)),
		zap.Int64("grand_total", ord.Totals.GrandTotal))

	return conf, nil
}

// remember keeps the confirmation for in-process duplicate replays, long
// enough for the detached persist to land and the stored row to take over.
func (f *Finalizer) remember(orderID string, conf *Confirmation) {
	f.mu.Lock()
	f.recent[orderID] = conf
	f.mu.Unlock()
	time.AfterFunc(10*time.Minute, func() {
		f.mu.Lock()
		delete(f.recent, orderID)
		f.mu.Unlock()
	})
}

// buildOrder snapshots cart and draft into an immutable order record. Totals
// are computed from the snapshot, never trusted from the client.
func (f *Finalizer) buildOrder(ctx context.Context, sessionID, userID, orderID, paymentID string) (*domain.Order, error) {
	c, err := f.carts.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	draft, err := f.pipeline.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var fee int64
	if draft.Delivery != nil {
		fee = draft.Delivery.Fee
	}
	subtotal := c.Total()
	savings := c.Savings()

	return &domain.Order{
		OrderID:   orderID,
		PaymentID: paymentID,
		UserID:    userID,
		Items:     append([]domain.CartLineItem(nil), c.Items...),
		Totals: domain.OrderTotals{
			Subtotal:    subtotal,
			Savings:     savings,
			DeliveryFee: fee,
			GrandTotal:  subtotal - savings + fee,
		},
		Address:       draft.Address,
		Delivery:      draft.Delivery,
		PaymentMethod: f.method,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// cleanup empties the cart and drops the checkout draft. Failures are logged;
// the confirmation already references its own item snapshot.
func (f *Finalizer) cleanup(ctx context.Context, sessionID, userID string) {
	if err := f.carts.Clear(ctx, sessionID, userID); err != nil {
		f.logger.Warn("Post-order cart clear failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
	if err := f.sessions.Delete(ctx, sessionID, session.KeyShippingAddress, session.KeyDeliveryInfo, session.KeyPaymentState); err != nil {
		f.logger.Warn("Checkout draft cleanup failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}
