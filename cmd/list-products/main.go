package main

import (
	"context"
	"fmt"
	"os"

	"github.com/harshava123/powderlegacy/internal/catalog"
)

// Prints the storefront catalog, optionally filtered by category.
func main() {
	category := ""
	if len(os.Args) > 1 {
		category = os.Args[1]
	}

	source := catalog.NewDefaultSource()
	products, err := source.ListProducts(context.Background(), category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list products: %v\n", err)
		os.Exit(1)
	}

	for _, p := range products {
		fmt.Printf("#%d %s [%s]\n", p.ID, p.Name, p.Category)
		for _, s := range p.Sizes {
			fmt.Printf("    %-6s ₹%-5d stock %d\n", s.Label, s.Price, s.Stock)
		}
	}
	fmt.Printf("\n%d product(s)\n", len(products))
}
