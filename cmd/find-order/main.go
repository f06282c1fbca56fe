package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/config"
	"github.com/harshava123/powderlegacy/internal/repository/postgres"
	"github.com/harshava123/powderlegacy/pkg/errors"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-order/main.go <order_id>")
		fmt.Println("Example: go run cmd/find-order/main.go order_PXYZabc123")
		os.Exit(1)
	}

	orderID := os.Args[1]

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

	fmt.Printf("🔍 Searching for order: %s\n\n", orderID)

	ord, err := repos.Order.GetByOrderID(context.Background(), orderID)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			fmt.Println("❌ Order not found.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Failed to query order: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(ord, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode order: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
