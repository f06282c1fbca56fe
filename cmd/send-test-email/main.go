package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/invoice"
	"github.com/harshava123/powderlegacy/internal/mailer"
)

// Sends a fabricated order confirmation through the configured SMTP relay so
// credentials can be verified without placing a real order.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	to := cfg.AdminEmail
	if len(os.Args) > 1 {
		to = os.Args[1]
	}
	if to == "" {
		fmt.Fprintln(os.Stderr, "Usage: go run cmd/send-test-email/main.go <recipient>")
		os.Exit(1)
	}

	ord := &domain.Order{
		OrderID:   "order_smtp_test",
		PaymentID: "pay_smtp_test",
		Items: []domain.CartLineItem{
			{ProductID: 1, Size: "250g", Name: "Test Product", Quantity: 1, Price: 100},
		},
		Totals: domain.OrderTotals{Subtotal: 100, DeliveryFee: 0, GrandTotal: 100},
		Address: &domain.ShippingAddress{
			FirstName: "SMTP",
			LastName:  "Test",
			Email:     to,
			Phone:     "9999999999",
			Address:   "1 Test Lane",
			City:      "Hyderabad",
			State:     "Telangana",
			Pincode:   "500001",
			Country:   "India",
		},
		PaymentMethod: cfg.Razorpay.Mode,
		CreatedAt:     time.Now().UTC(),
	}

	html, err := invoice.Render(ord)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render invoice: %v\n", err)
		os.Exit(1)
	}

	sender := mailer.NewSMTPSender(cfg.SMTP, cfg.AdminEmail, logger)
	if err := sender.SendOrderEmails(ord, html); err != nil {
		fmt.Fprintf(os.Stderr, "Send failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Test emails sent via %s:%d\n", cfg.SMTP.Host, cfg.SMTP.Port)
}
