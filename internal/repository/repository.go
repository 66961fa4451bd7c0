package repository

import (
	"context"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
)

// AdminKeyRepository stores hashed admin API keys
type AdminKeyRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.AdminKey, error)
	Create(ctx context.Context, key *domain.AdminKey) error
}

// OrderRepository stores paid orders awaiting fulfilment
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// HerbFilter narrows a herb search. Empty fields are ignored.
type HerbFilter struct {
	Query       string
	Action      string
	Preparation string
	Indication  string
	Constituent string
	Limit       int
	Offset      int
}

const (
	DefaultHerbLimit = 24
	MaxHerbLimit     = 100
)

// NormalizeHerbPage clamps limit and offset to the supported range
func NormalizeHerbPage(limit, offset int) (int, int) {
	if limit < 1 {
		limit = DefaultHerbLimit
	}
	if limit > MaxHerbLimit {
		limit = MaxHerbLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// HerbRepository serves the herbs lookup
type HerbRepository interface {
	Search(ctx context.Context, filter HerbFilter) ([]*domain.HerbSummary, int, error)
	GetByID(ctx context.Context, id string) (*domain.Herb, error)
	ListActions(ctx context.Context) ([]string, error)
	ListPreparations(ctx context.Context) ([]string, error)
}

// Repositories groups every repository the API needs
type Repositories struct {
	AdminKey AdminKeyRepository
	Order    OrderRepository
	Herb     HerbRepository
}
