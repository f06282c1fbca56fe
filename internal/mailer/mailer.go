package mailer

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/invoice"
)

// Sender delivers order confirmation mail. Implementations must treat the
// customer and admin sends independently; one failing must not block the other.
type Sender interface {
	SendOrderEmails(order *domain.Order, invoiceHTML string) error
}

// SMTPSender sends through a plain SMTP relay via gomail.
type SMTPSender struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
	logger     *zap.Logger
}

// NewSMTPSender builds a sender from SMTP config. The dialer connects lazily,
// on first send.
func NewSMTPSender(cfg config.SMTPConfig, adminEmail string, logger *zap.Logger) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPSender{
		dialer:     d,
		from:       from,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// SendOrderEmails sends the customer confirmation and the admin notification.
// The customer send is skipped when the shipping address carries no email. Both
// sends are attempted even if one fails; the returned error aggregates what
// went wrong.
func (s *SMTPSender) SendOrderEmails(order *domain.Order, invoiceHTML string) error {
	var errs []string

	customerEmail := ""
	if order.Address != nil {
		customerEmail = order.Address.Email
	}
	if customerEmail != "" {
		if err := s.send(customerEmail, customerSubject(order), customerBody(order), order, invoiceHTML); err != nil {
			s.logger.Warn("Customer confirmation email failed",
				zap.String("order_id", order.OrderID),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("customer: %v", err))
		}
	} else {
		s.logger.Info("No customer email on order, skipping confirmation",
			zap.String("order_id", order.OrderID))
	}

	if s.adminEmail != "" {
		if err := s.send(s.adminEmail, adminSubject(order), adminBody(order), order, invoiceHTML); err != nil {
			s.logger.Warn("Admin notification email failed",
				zap.String("order_id", order.OrderID),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("admin: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("order email delivery: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (s *SMTPSender) send(to, subject, body string, order *domain.Order, invoiceHTML string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	if invoiceHTML != "" {
		name := invoice.Filename(order.OrderID)
		m.Attach(name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write([]byte(invoiceHTML))
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"text/html; charset=UTF-8"}}),
		)
	}
	return s.dialer.DialAndSend(m)
}

func customerSubject(order *domain.Order) string {
	return fmt.Sprintf("Order Confirmed - %s | The Powder Legacy", order.OrderID)
}

func adminSubject(order *domain.Order) string {
	return fmt.Sprintf("New Order Received - %s", order.OrderID)
}

func customerBody(order *domain.Order) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #15803d;">Thank you for your order!</h2>`)
	name := "there"
	if order.Address != nil {
		if n := order.Address.FullName(); n != "" {
			name = n
		}
	}
	fmt.Fprintf(&b, `<p>Hi %s,</p>`, name)
	fmt.Fprintf(&b, `<p>Your order <strong>%s</strong> has been confirmed. Your invoice is attached.</p>`, order.OrderID)
	writeItemsTable(&b, order)
	writeAddressBlock(&b, order)
	b.WriteString(`<p>We will notify you once your order ships.</p>`)
	b.WriteString(`<p>Warm regards,<br>The Powder Legacy</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

func adminBody(order *domain.Order) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	fmt.Fprintf(&b, `<h2>New order %s</h2>`, order.OrderID)
	fmt.Fprintf(&b, `<p>Payment ID: %s</p>`, orNA(order.PaymentID))
	writeItemsTable(&b, order)
	writeAddressBlock(&b, order)
	b.WriteString(`</div>`)
	return b.String()
}

func writeItemsTable(b *strings.Builder, order *domain.Order) {
	b.WriteString(`<table style="width: 100%; border-collapse: collapse; margin: 16px 0;">`)
	b.WriteString(`<tr style="background: #f0fdf4;"><th style="padding: 8px; text-align: left;">Item</th><th style="padding: 8px;">Qty</th><th style="padding: 8px; text-align: right;">Amount</th></tr>`)
	for _, it := range order.Items {
		fmt.Fprintf(b,
			`<tr><td style="padding: 8px; border-bottom: 1px solid #eee;">%s (%s)</td><td style="padding: 8px; border-bottom: 1px solid #eee; text-align: center;">%d</td><td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">&#8377;%d</td></tr>`,
			it.Name, it.Size, it.Quantity, it.Subtotal())
	}
	fmt.Fprintf(b,
		`<tr><td style="padding: 8px;" colspan="2"><strong>Grand Total</strong></td><td style="padding: 8px; text-align: right;"><strong>&#8377;%d</strong></td></tr>`,
		order.Totals.GrandTotal)
	b.WriteString(`</table>`)
}

func writeAddressBlock(b *strings.Builder, order *domain.Order) {
	if order.Address == nil {
		return
	}
	b.WriteString(`<h3 style="margin-bottom: 4px;">Delivery Address</h3><p style="margin-top: 0;">`)
	b.WriteString(strings.Join(order.Address.Lines(), "<br>"))
	b.WriteString(`</p>`)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
