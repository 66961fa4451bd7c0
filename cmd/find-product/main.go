package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/config"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/payments"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/shipping"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/find-product <text>")
		fmt.Println("Example: go run ./cmd/find-product \"2.5L\"")
		os.Exit(1)
	}

	needle := strings.ToLower(os.Args[1])

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	gateway, err := payments.NewStripeGateway(payments.StripeConfig{
		APIKey:   cfg.Stripe.SecretKey,
		Currency: cfg.Stripe.Currency,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create Stripe gateway: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Searching products for: %s\n\n", os.Args[1])

	products, err := gateway.ListProducts(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list products: %v\n", err)
		os.Exit(1)
	}

	found := 0
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		found++

		quote := shipping.CalculateCost([]domain.CartLine{{Name: p.Name, Quantity: 1}})
		fmt.Printf("%s\n", p.Name)
		fmt.Printf("  ID:       %s\n", p.ID)
		fmt.Printf("  Price:    %s %s\n", shipping.FormatCost(p.Price), strings.ToUpper(p.Currency))
		fmt.Printf("  Volume:   %dmL\n", shipping.ExtractVolumeML(p.Name))
		fmt.Printf("  Shipping: %s (%s)\n\n", shipping.FormatCost(quote.Cost), quote.Description)
	}

	if found == 0 {
		fmt.Println("No matching products")
		os.Exit(1)
	}
	fmt.Printf("%d matching product(s)\n", found)
}
