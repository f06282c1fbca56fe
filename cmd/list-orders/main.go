package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	fmt.Println("📋 Listing recent orders:")

	orders, err := repos.Order.List(context.Background(), 100, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to query orders: %v\n", err)
		os.Exit(1)
	}

	for i, ord := range orders {
		fmt.Printf("Order #%d:\n", i+1)
		fmt.Printf("  Order ID: %s\n", ord.OrderID)
		if ord.PaymentID != "" {
			fmt.Printf("  Payment ID: %s\n", ord.PaymentID)
		}
		if ord.UserID != "" {
			fmt.Printf("  User ID: %s\n", ord.UserID)
		}
		fmt.Printf("  Items: %d\n", len(ord.Items))
		fmt.Printf("  Grand Total: ₹%d\n", ord.Totals.GrandTotal)
		fmt.Printf("  Payment Method: %s\n", ord.PaymentMethod)
		fmt.Printf("  Created: %s\n", ord.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Println()
	}

	if len(orders) == 0 {
		fmt.Println("❌ No orders found in database.")
	} else {
		fmt.Printf("✅ Found %d order(s)\n", len(orders))
	}
}
