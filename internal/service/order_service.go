package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

type orderService struct {
	orders  repository.OrderRepository
	gateway PaymentsGateway
	logger  *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders repository.OrderRepository, gateway PaymentsGateway, logger *zap.Logger) *orderService {
	return &orderService{
		orders:  orders,
		gateway: gateway,
		logger:  logger,
	}
}

// RecordFromSession stores the order for a paid checkout session. The call
// is idempotent: a session that was already recorded returns the stored order.
func (s *orderService) RecordFromSession(ctx context.Context, sessionID string) (*domain.Order, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, &errors.ErrValidation{Field: "session_id", Message: "session ID is required"}
	}

	existing, err := s.orders.GetByID(ctx, sessionID)
	if err == nil {
		return existing, nil
	}
	var notFound *errors.ErrNotFound
	if !stderrors.As(err, &notFound) {
		return nil, err
	}

	summary, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if summary.PaymentStatus != "paid" && summary.PaymentStatus != "no_payment_required" {
		return nil, &errors.ErrValidation{Field: "session_id", Message: "checkout has not been paid"}
	}

	order := orderFromSummary(summary, s.logger)
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order recorded",
		zap.String("order_id", order.ID),
		zap.String("collection_method", string(order.CollectionMethod)),
		zap.Int64("total_amount", order.TotalAmount),
	)

	return order, nil
}

func orderFromSummary(summary domain.CheckoutSummary, logger *zap.Logger) *domain.Order {
	order := &domain.Order{
		ID:               summary.ID,
		CustomerEmail:    summary.CustomerEmail,
		CustomerName:     summary.CustomerName,
		CustomerPhone:    summary.CustomerPhone,
		TotalAmount:      summary.AmountTotal,
		Status:           domain.OrderStatusPending,
		PaymentIntentID:  summary.PaymentIntentID,
		CollectionMethod: domain.CollectionMethod(summary.Metadata["collectionMethod"]),
		ShippingAddress:  summary.ShippingAddress,
	}
	if !order.CollectionMethod.IsValid() {
		order.CollectionMethod = domain.CollectionMethodShipping
	}

	if raw := summary.Metadata["items"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &order.Items); err != nil {
			logger.Warn("Failed to decode order items from checkout metadata",
				zap.String("session_id", summary.ID),
				zap.Error(err),
			)
		}
	}
	if raw := summary.Metadata["shippingCost"]; raw != "" {
		if cost, err := strconv.ParseInt(raw, 10, 64); err == nil {
			order.ShippingCost = &cost
		}
	}

	return order
}

// List returns orders newest first; an empty status lists every order
func (s *orderService) List(ctx context.Context, status string) ([]*domain.Order, error) {
	if status == "" {
		return s.orders.List(ctx, nil)
	}

	st := domain.OrderStatus(strings.ToLower(status))
	if !st.IsValid() {
		return nil, &errors.ErrValidation{Field: "status", Message: "unknown order status " + status}
	}
	return s.orders.List(ctx, &st)
}

// UpdateStatus moves a pending order to collected or shipped
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if !status.IsValid() {
		return &errors.ErrValidation{Field: "status", Message: "unknown order status " + string(status)}
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	// Validate state transition
	if !order.Status.CanTransitionTo(status) {
		return &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   status,
		}
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(status)),
	)

	return nil
}
