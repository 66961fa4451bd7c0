package service

import (
	"context"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/payments"
)

// PaymentsGateway is the part of the payment processor the services use.
// *payments.StripeGateway implements it.
type PaymentsGateway interface {
	ListCharges(ctx context.Context) ([]domain.Charge, error)
	ListCustomers(ctx context.Context) ([]domain.RegisteredCustomer, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListRefunds(ctx context.Context) ([]domain.Refund, error)
	CreateRefund(ctx context.Context, req payments.RefundRequest) (domain.Refund, error)
	CreateCheckoutSession(ctx context.Context, req payments.CheckoutSessionRequest) (payments.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (domain.CheckoutSummary, error)
}
