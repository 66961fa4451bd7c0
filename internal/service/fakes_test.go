package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/payments"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

type fakeGateway struct {
	charges     []domain.Charge
	customers   []domain.RegisteredCustomer
	products    []domain.Product
	refunds     []domain.Refund
	summary     domain.CheckoutSummary
	chargesErr  error
	customerErr error

	mu             sync.Mutex
	sessionReq     *payments.CheckoutSessionRequest
	refundReq      *payments.RefundRequest
	sessionFetches int
}

func (f *fakeGateway) ListCharges(ctx context.Context) ([]domain.Charge, error) {
	return f.charges, f.chargesErr
}

func (f *fakeGateway) ListCustomers(ctx context.Context) ([]domain.RegisteredCustomer, error) {
	return f.customers, f.customerErr
}

func (f *fakeGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeGateway) ListRefunds(ctx context.Context) ([]domain.Refund, error) {
	return f.refunds, nil
}

func (f *fakeGateway) CreateRefund(ctx context.Context, req payments.RefundRequest) (domain.Refund, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refundReq = &req
	amount := int64(5000)
	if req.Amount != nil {
		amount = *req.Amount
	}
	return domain.Refund{ID: "re_1", Amount: amount, PaymentIntentID: req.PaymentIntentID}, nil
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, req payments.CheckoutSessionRequest) (payments.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionReq = &req
	return payments.CheckoutSession{ID: "cs_new", URL: "https://checkout.test/cs_new"}, nil
}

func (f *fakeGateway) GetCheckoutSession(ctx context.Context, id string) (domain.CheckoutSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionFetches++
	if f.summary.ID != id {
		return domain.CheckoutSummary{}, &errors.ErrNotFound{Resource: "checkout session", ID: id}
	}
	return f.summary, nil
}

type memoryOrders struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newMemoryOrders(orders ...*domain.Order) *memoryOrders {
	m := &memoryOrders{orders: map[string]*domain.Order{}}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *memoryOrders) Create(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[order.ID]; !ok {
		m.orders[order.ID] = order
	}
	return nil
}

func (m *memoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id}
	}
	return o, nil
}

func (m *memoryOrders) List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for _, o := range m.orders {
		if status == nil || o.Status == *status {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryOrders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id}
	}
	o.Status = status
	return nil
}

type fakeHerbs struct {
	filter repository.HerbFilter
	herbs  []*domain.HerbSummary
	total  int
}

func (f *fakeHerbs) Search(ctx context.Context, filter repository.HerbFilter) ([]*domain.HerbSummary, int, error) {
	f.filter = filter
	return f.herbs, f.total, nil
}

func (f *fakeHerbs) GetByID(ctx context.Context, id string) (*domain.Herb, error) {
	return nil, &errors.ErrNotFound{Resource: "herb", ID: id}
}

func (f *fakeHerbs) ListActions(ctx context.Context) ([]string, error) {
	return []string{"nervine", "sedative"}, nil
}

func (f *fakeHerbs) ListPreparations(ctx context.Context) ([]string, error) {
	return []string{"tincture"}, nil
}
