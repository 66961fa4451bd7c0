package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/customers"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

type customerService struct {
	gateway PaymentsGateway
	logger  *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(gateway PaymentsGateway, logger *zap.Logger) *customerService {
	return &customerService{
		gateway: gateway,
		logger:  logger,
	}
}

// ListCustomers returns registered customers and guest identities as one
// list, filtered and sorted per the query. Defaults to newest first.
func (s *customerService) ListCustomers(ctx context.Context, q ListCustomersQuery) ([]domain.CustomerRecord, error) {
	field := customers.SortField(strings.ToLower(strings.TrimSpace(q.Sort)))
	if field == "" {
		field = customers.SortByCreated
	}
	if !field.IsValid() {
		return nil, &errors.ErrValidation{Field: "sort", Message: "unknown sort field " + string(field)}
	}

	var descending bool
	switch strings.ToLower(strings.TrimSpace(q.Direction)) {
	case "", "desc":
		descending = true
	case "asc":
		descending = false
	default:
		return nil, &errors.ErrValidation{Field: "direction", Message: "must be asc or desc"}
	}

	records, err := s.resolveAll(ctx)
	if err != nil {
		return nil, err
	}

	return customers.Sort(customers.Filter(records, q.Search), field, descending), nil
}

// Stats summarises the full, unfiltered customer list
func (s *customerService) Stats(ctx context.Context) (customers.Stats, error) {
	records, err := s.resolveAll(ctx)
	if err != nil {
		return customers.Stats{}, err
	}
	return customers.Summarize(records), nil
}

func (s *customerService) resolveAll(ctx context.Context) ([]domain.CustomerRecord, error) {
	var (
		registered []domain.RegisteredCustomer
		charges    []domain.Charge
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		registered, err = s.gateway.ListCustomers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		charges, err = s.gateway.ListCharges(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load customer data", zap.Error(err))
		return nil, err
	}

	records := customers.Resolve(charges, customers.AggregateMetrics(charges, registered))

	s.logger.Debug("Resolved customers",
		zap.Int("registered", len(registered)),
		zap.Int("charges", len(charges)),
		zap.Int("records", len(records)),
	)

	return records, nil
}
