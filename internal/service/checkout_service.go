package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/payments"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

type checkoutService struct {
	gateway  PaymentsGateway
	shipping *shippingService
	logger   *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(gateway PaymentsGateway, logger *zap.Logger) *checkoutService {
	return &checkoutService{
		gateway:  gateway,
		shipping: NewShippingService(logger),
		logger:   logger,
	}
}

// CreateSession opens a hosted checkout for the cart. Shipping is priced
// here from the item names; the client never supplies it.
func (s *checkoutService) CreateSession(ctx context.Context, req CheckoutRequest, baseURL string) (payments.CheckoutSession, error) {
	if len(req.Items) == 0 {
		return payments.CheckoutSession{}, &errors.ErrValidation{Field: "items", Message: "no items provided"}
	}

	method := domain.CollectionMethod(strings.ToLower(strings.TrimSpace(req.CollectionMethod)))
	if method == "" {
		method = domain.CollectionMethodShipping
	}
	if !method.IsValid() {
		return payments.CheckoutSession{}, &errors.ErrValidation{Field: "collection_method", Message: "must be pickup or shipping"}
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	lines := make([]domain.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 || item.Quantity > MaxItemQuantity {
			return payments.CheckoutSession{}, &errors.ErrValidation{Field: "quantity", Message: "must be between 1 and 1000"}
		}
		if item.Price < 0 {
			return payments.CheckoutSession{}, &errors.ErrValidation{Field: "price", Message: "must not be negative"}
		}
		items = append(items, domain.OrderItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
		lines = append(lines, domain.CartLine{Name: item.Name, Quantity: item.Quantity})
	}

	var shippingCost int64
	if method == domain.CollectionMethodShipping {
		shippingCost = s.shipping.Quote(lines).Cost
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	session, err := s.gateway.CreateCheckoutSession(ctx, payments.CheckoutSessionRequest{
		Items:            items,
		CollectionMethod: method,
		ShippingCost:     shippingCost,
		SuccessURL:       baseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:        baseURL + "/cart",
	})
	if err != nil {
		return payments.CheckoutSession{}, err
	}

	return session, nil
}
