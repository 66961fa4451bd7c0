package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/payments"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

type refundService struct {
	gateway PaymentsGateway
	logger  *zap.Logger
}

// NewRefundService creates a new refund service
func NewRefundService(gateway PaymentsGateway, logger *zap.Logger) *refundService {
	return &refundService{
		gateway: gateway,
		logger:  logger,
	}
}

func (s *refundService) List(ctx context.Context) ([]domain.Refund, error) {
	return s.gateway.ListRefunds(ctx)
}

// Create refunds a payment in full, or partially when an amount is given
func (s *refundService) Create(ctx context.Context, req CreateRefundRequest) (domain.Refund, error) {
	intentID := strings.TrimSpace(req.PaymentIntentID)
	if intentID == "" {
		return domain.Refund{}, &errors.ErrValidation{Field: "payment_intent_id", Message: "payment intent ID is required"}
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return domain.Refund{}, &errors.ErrValidation{Field: "amount", Message: "must be positive"}
	}

	return s.gateway.CreateRefund(ctx, payments.RefundRequest{
		PaymentIntentID: intentID,
		Amount:          req.Amount,
	})
}
