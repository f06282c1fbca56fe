package main

import (
	"fmt"
	"os"

	"github.com/harshava123/powderlegacy/internal/api/middleware"
)

// Prints the bcrypt hash for an admin API key; put the output in
// ADMIN_API_KEY_HASH.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hash-admin-key/main.go <api-key>")
		os.Exit(1)
	}

	hash, err := middleware.HashAPIKey(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
