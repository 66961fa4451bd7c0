// Package gist keeps orders in a JSON file inside a GitHub gist.
package gist

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/config"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

const ordersFile = "orders.json"

// OrderStore implements repository.OrderRepository on top of a gist
type OrderStore struct {
	gistID string
	client *resty.Client
	logger *zap.Logger

	// serialises read-modify-write cycles from this process
	mu sync.Mutex
}

type gistFile struct {
	Content string `json:"content"`
}

type gistDocument struct {
	Files map[string]gistFile `json:"files"`
}

// storedOrder is the orders.json layout
type storedOrder struct {
	ID               string             `json:"id"`
	CustomerEmail    string             `json:"customerEmail"`
	CustomerName     string             `json:"customerName"`
	CustomerPhone    string             `json:"customerPhone,omitempty"`
	Items            []domain.OrderItem `json:"items"`
	TotalAmount      int64              `json:"totalAmount"`
	Status           domain.OrderStatus `json:"status"`
	PaymentIntentID  string             `json:"paymentIntentId"`
	CreatedAt        time.Time          `json:"createdAt"`
	CollectionMethod string             `json:"collectionMethod"`
	ShippingCost     *int64             `json:"shippingCost,omitempty"`
	ShippingAddress  *domain.Address    `json:"shippingAddress,omitempty"`
	Notes            string             `json:"notes,omitempty"`
}

// NewOrderStore creates a gist-backed order store
func NewOrderStore(cfg config.GistConfig, logger *zap.Logger) *OrderStore {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30*time.Second).
		SetHeader("Authorization", "token "+cfg.Token).
		SetHeader("Accept", "application/vnd.github.v3+json")

	return &OrderStore{
		gistID: cfg.GistID,
		client: client,
		logger: logger,
	}
}

func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.ID == order.ID {
			return nil
		}
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	orders = append(orders, toStored(order))

	return s.save(ctx, orders)
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == id {
			return fromStored(o), nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id}
}

// List returns orders newest first, optionally restricted to one status
func (s *OrderStore) List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var out []*domain.Order
	for _, o := range orders {
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, fromStored(o))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return &errors.ErrNotFound{Resource: "order", ID: id}
	}

	return s.save(ctx, orders)
}

func (s *OrderStore) load(ctx context.Context) ([]storedOrder, error) {
	var doc gistDocument
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&doc).
		Get("/gists/" + s.gistID)
	if err != nil {
		s.logger.Error("Failed to fetch gist", zap.String("gist_id", s.gistID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch gist: %w", err)
	}
	if resp.IsError() {
		s.logger.Error("Gist API error",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return nil, fmt.Errorf("gist API error: status %d", resp.StatusCode())
	}

	file, ok := doc.Files[ordersFile]
	if !ok || file.Content == "" {
		return nil, nil
	}

	var orders []storedOrder
	if err := json.Unmarshal([]byte(file.Content), &orders); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ordersFile, err)
	}
	return orders, nil
}

func (s *OrderStore) save(ctx context.Context, orders []storedOrder) error {
	content, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", ordersFile, err)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(gistDocument{Files: map[string]gistFile{
			ordersFile: {Content: string(content)},
		}}).
		Patch("/gists/" + s.gistID)
	if err != nil {
		s.logger.Error("Failed to update gist", zap.String("gist_id", s.gistID), zap.Error(err))
		return fmt.Errorf("failed to update gist: %w", err)
	}
	if resp.IsError() {
		s.logger.Error("Gist API error",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return fmt.Errorf("gist API error: status %d", resp.StatusCode())
	}

	return nil
}

func toStored(o *domain.Order) storedOrder {
	return storedOrder{
		ID:               o.ID,
		CustomerEmail:    o.CustomerEmail,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		Items:            o.Items,
		TotalAmount:      o.TotalAmount,
		Status:           o.Status,
		PaymentIntentID:  o.PaymentIntentID,
		CreatedAt:        o.CreatedAt,
		CollectionMethod: string(o.CollectionMethod),
		ShippingCost:     o.ShippingCost,
		ShippingAddress:  o.ShippingAddress,
		Notes:            o.Notes,
	}
}

func fromStored(o storedOrder) *domain.Order {
	return &domain.Order{
		ID:               o.ID,
		CustomerEmail:    o.CustomerEmail,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		Items:            o.Items,
		TotalAmount:      o.TotalAmount,
		Status:           o.Status,
		PaymentIntentID:  o.PaymentIntentID,
		CreatedAt:        o.CreatedAt,
		CollectionMethod: domain.CollectionMethod(o.CollectionMethod),
		ShippingCost:     o.ShippingCost,
		ShippingAddress:  o.ShippingAddress,
		Notes:            o.Notes,
	}
}
