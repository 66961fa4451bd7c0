package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/config"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run ./cmd/create-admin-key <name> <api-key>")
		fmt.Println("Example: go run ./cmd/create-admin-key \"shop owner\" \"long-random-admin-key\"")
		os.Exit(1)
	}

	name := os.Args[1]
	apiKey := os.Args[2]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	apiKeyHash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	key := &domain.AdminKey{
		Name:       name,
		APIKeyHash: string(apiKeyHash),
		IsActive:   true,
	}

	repos := postgres.NewRepositories(db, logger)
	if err := repos.AdminKey.Create(context.Background(), key); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin key created\n\n")
	fmt.Printf("Key ID:   %s\n", key.ID.String())
	fmt.Printf("Key name: %s\n", key.Name)
	fmt.Printf("\nThe key is stored hashed and cannot be shown again.\n")
	fmt.Printf("Send it in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", apiKey)
}
