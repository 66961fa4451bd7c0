package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/charge"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/customer"
	"github.com/stripe/stripe-go/v78/product"
	"github.com/stripe/stripe-go/v78/refund"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
)

const (
	pageSize         = 100
	shippingLineName = "Shipping - Australia Wide"
	defaultCurrency  = "aud"
)

type chargeAPI interface {
	List(params *stripe.ChargeListParams) *charge.Iter
}

type customerAPI interface {
	List(params *stripe.CustomerListParams) *customer.Iter
}

type productAPI interface {
	List(params *stripe.ProductListParams) *product.Iter
}

type refundAPI interface {
	List(params *stripe.RefundListParams) *refund.Iter
	New(params *stripe.RefundParams) (*stripe.Refund, error)
}

type sessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Clients lets callers substitute the Stripe sub-clients
type Clients struct {
	Charges   chargeAPI
	Customers customerAPI
	Products  productAPI
	Refunds   refundAPI
	Sessions  sessionAPI
}

// StripeConfig configures the gateway
type StripeConfig struct {
	APIKey            string
	Currency          string
	ShippingCountries []string
	Backends          *stripe.Backends
	Clients           *Clients
}

// StripeGateway reads and writes payment data through the Stripe API
type StripeGateway struct {
	api       Clients
	currency  string
	countries []string
	logger    *zap.Logger
}

// RefundRequest refunds a payment intent in full, or partially when Amount is set
type RefundRequest struct {
	PaymentIntentID string
	Amount          *int64
}

// CheckoutSessionRequest describes a hosted checkout for a cart
type CheckoutSessionRequest struct {
	Items            []domain.OrderItem
	CollectionMethod domain.CollectionMethod
	ShippingCost     int64
	SuccessURL       string
	CancelURL        string
}

// CheckoutSession is a created hosted checkout
type CheckoutSession struct {
	ID  string
	URL string
}

// NewStripeGateway builds a gateway from an API key or injected clients
func NewStripeGateway(cfg StripeConfig, logger *zap.Logger) (*StripeGateway, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" && cfg.Clients == nil {
		return nil, errors.New("stripe: api key is required")
	}

	var clients Clients
	if cfg.Clients != nil {
		clients = *cfg.Clients
	} else {
		sc := client.New(apiKey, cfg.Backends)
		clients = Clients{
			Charges:   sc.Charges,
			Customers: sc.Customers,
			Products:  sc.Products,
			Refunds:   sc.Refunds,
			Sessions:  sc.CheckoutSessions,
		}
	}

	currency := strings.ToLower(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	return &StripeGateway{
		api:       clients,
		currency:  currency,
		countries: cfg.ShippingCountries,
		logger:    logger,
	}, nil
}

// ListCharges returns every charge on the account
func (g *StripeGateway) ListCharges(ctx context.Context) ([]domain.Charge, error) {
	params := &stripe.ChargeListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(pageSize)

	var out []domain.Charge
	it := g.api.Charges.List(params)
	for it.Next() {
		out = append(out, chargeFromStripe(it.Charge()))
	}
	if err := it.Err(); err != nil {
		g.logger.Error("Failed to list charges", zap.Error(err))
		return nil, fmt.Errorf("stripe: list charges: %w", err)
	}

	return out, nil
}

// ListCustomers returns every registered customer without metrics
func (g *StripeGateway) ListCustomers(ctx context.Context) ([]domain.RegisteredCustomer, error) {
	params := &stripe.CustomerListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(pageSize)

	var out []domain.RegisteredCustomer
	it := g.api.Customers.List(params)
	for it.Next() {
		c := it.Customer()
		if c == nil || c.Deleted {
			continue
		}
		out = append(out, customerFromStripe(c))
	}
	if err := it.Err(); err != nil {
		g.logger.Error("Failed to list customers", zap.Error(err))
		return nil, fmt.Errorf("stripe: list customers: %w", err)
	}

	return out, nil
}

// ListProducts returns active products with their default price
func (g *StripeGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	params := &stripe.ProductListParams{Active: stripe.Bool(true)}
	params.Context = ctx
	params.Limit = stripe.Int64(pageSize)
	params.AddExpand("data.default_price")

	var out []domain.Product
	it := g.api.Products.List(params)
	for it.Next() {
		out = append(out, productFromStripe(it.Product(), g.currency))
	}
	if err := it.Err(); err != nil {
		g.logger.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("stripe: list products: %w", err)
	}

	return out, nil
}

// ListRefunds returns the latest page of refunds
func (g *StripeGateway) ListRefunds(ctx context.Context) ([]domain.Refund, error) {
	params := &stripe.RefundListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(pageSize)
	params.Single = true
	params.AddExpand("data.payment_intent.customer")

	var out []domain.Refund
	it := g.api.Refunds.List(params)
	for it.Next() {
		out = append(out, refundFromStripe(it.Refund()))
	}
	if err := it.Err(); err != nil {
		g.logger.Error("Failed to list refunds", zap.Error(err))
		return nil, fmt.Errorf("stripe: list refunds: %w", err)
	}

	return out, nil
}

// CreateRefund refunds a payment intent on the customer's behalf
func (g *StripeGateway) CreateRefund(ctx context.Context, req RefundRequest) (domain.Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(req.PaymentIntentID),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	params.AddExpand("payment_intent.customer")
	if req.Amount != nil {
		params.Amount = stripe.Int64(*req.Amount)
	}

	r, err := g.api.Refunds.New(params)
	if err != nil {
		g.logger.Error("Failed to create refund",
			zap.String("payment_intent_id", req.PaymentIntentID),
			zap.Error(err),
		)
		return domain.Refund{}, fmt.Errorf("stripe: create refund: %w", err)
	}

	g.logger.Info("Refund created",
		zap.String("refund_id", r.ID),
		zap.String("payment_intent_id", req.PaymentIntentID),
		zap.Int64("amount", r.Amount),
	)

	return refundFromStripe(r), nil
}

// CreateCheckoutSession creates a hosted card checkout for the cart
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error) {
	params, err := g.sessionParams(req)
	if err != nil {
		return CheckoutSession{}, err
	}
	params.Context = ctx

	s, err := g.api.Sessions.New(params)
	if err != nil {
		g.logger.Error("Failed to create checkout session", zap.Error(err))
		return CheckoutSession{}, fmt.Errorf("stripe: create checkout session: %w", err)
	}

	g.logger.Info("Checkout session created",
		zap.String("session_id", s.ID),
		zap.String("collection_method", string(req.CollectionMethod)),
		zap.Int64("shipping_cost", req.ShippingCost),
	)

	return CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) sessionParams(req CheckoutSessionRequest) (*stripe.CheckoutSessionParams, error) {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("stripe: encode items: %w", err)
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items)+1)
	for _, item := range req.Items {
		lineItems = append(lineItems, g.lineItem(item.Name, item.Price, int64(item.Quantity)))
	}
	if req.CollectionMethod == domain.CollectionMethodShipping && req.ShippingCost > 0 {
		lineItems = append(lineItems, g.lineItem(shippingLineName, req.ShippingCost, 1))
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		CustomerCreation:   stripe.String("always"),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"items":            string(items),
			"collectionMethod": string(req.CollectionMethod),
			"shippingCost":     fmt.Sprintf("%d", req.ShippingCost),
		},
	}
	if req.CollectionMethod == domain.CollectionMethodShipping {
		params.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(g.countries),
		}
	}

	return params, nil
}

func (g *StripeGateway) lineItem(name string, unitAmount, quantity int64) *stripe.CheckoutSessionLineItemParams {
	return &stripe.CheckoutSessionLineItemParams{
		Quantity: stripe.Int64(quantity),
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(g.currency),
			UnitAmount: stripe.Int64(unitAmount),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(name),
			},
		},
	}
}

// GetCheckoutSession retrieves a completed checkout
func (g *StripeGateway) GetCheckoutSession(ctx context.Context, id string) (domain.CheckoutSummary, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.Sessions.Get(id, params)
	if err != nil {
		g.logger.Error("Failed to get checkout session", zap.String("session_id", id), zap.Error(err))
		return domain.CheckoutSummary{}, fmt.Errorf("stripe: get checkout session: %w", err)
	}

	return summaryFromSession(s), nil
}
