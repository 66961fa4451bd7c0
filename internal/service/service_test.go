package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

var day0 = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func customerFixture() *fakeGateway {
	return &fakeGateway{
		customers: []domain.RegisteredCustomer{
			{ID: "cus_1", Email: "zoe@example.com", Name: "Zoe", Created: day0},
		},
		charges: []domain.Charge{
			{ID: "ch_1", CustomerID: "cus_1", Amount: 3000, Status: domain.ChargeStatusSucceeded, Created: day0.Add(time.Hour)},
			{ID: "ch_2", BillingEmail: "amy@example.com", BillingName: "Amy", Amount: 1500, Status: domain.ChargeStatusSucceeded, Created: day0.Add(48 * time.Hour)},
			{ID: "ch_3", BillingEmail: "amy@example.com", Amount: 500, Status: domain.ChargeStatusSucceeded, Created: day0.Add(24 * time.Hour)},
		},
	}
}

func TestListCustomersDefaultsToNewestFirst(t *testing.T) {
	svc := NewCustomerService(customerFixture(), zap.NewNop())

	records, err := svc.ListCustomers(context.Background(), ListCustomersQuery{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, records[0].IsGuest)
	assert.Equal(t, "Amy", records[0].Name)
	assert.Equal(t, int64(2000), records[0].TotalSpent)
	assert.Equal(t, 2, records[0].OrderCount)

	assert.Equal(t, "cus_1", records[1].ID)
	assert.Equal(t, int64(3000), records[1].TotalSpent)
	assert.Equal(t, 1, records[1].OrderCount)
}

func TestListCustomersSearchAndSort(t *testing.T) {
	svc := NewCustomerService(customerFixture(), zap.NewNop())

	records, err := svc.ListCustomers(context.Background(), ListCustomersQuery{Sort: "name", Direction: "asc"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Amy", records[0].Name)
	assert.Equal(t, "Zoe", records[1].Name)

	records, err = svc.ListCustomers(context.Background(), ListCustomersQuery{Search: "zoe"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "cus_1", records[0].ID)
}

func TestListCustomersRejectsBadQuery(t *testing.T) {
	svc := NewCustomerService(customerFixture(), zap.NewNop())

	_, err := svc.ListCustomers(context.Background(), ListCustomersQuery{Sort: "shoe_size"})
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sort", verr.Field)

	_, err = svc.ListCustomers(context.Background(), ListCustomersQuery{Direction: "sideways"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "direction", verr.Field)
}

func TestListCustomersFailsWhenEitherSourceFails(t *testing.T) {
	boom := stderrors.New("stripe unavailable")

	gw := customerFixture()
	gw.chargesErr = boom
	_, err := NewCustomerService(gw, zap.NewNop()).ListCustomers(context.Background(), ListCustomersQuery{})
	assert.ErrorIs(t, err, boom)

	gw = customerFixture()
	gw.customerErr = boom
	_, err = NewCustomerService(gw, zap.NewNop()).Stats(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCustomerStats(t *testing.T) {
	stats, err := NewCustomerService(customerFixture(), zap.NewNop()).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Guests)
	assert.Equal(t, 1, stats.Registered)
	assert.Equal(t, int64(5000), stats.TotalRevenue)
}

func TestShippingQuoteRequest(t *testing.T) {
	quote := NewShippingService(zap.NewNop()).QuoteRequest(ShippingQuoteRequest{
		Items: []QuoteItem{{Name: "Ethanol 1L", Quantity: 2}},
	})
	assert.Equal(t, 2000, quote.TotalVolumeML)
	assert.Equal(t, int64(2330), quote.Cost)
	assert.False(t, quote.Unbanded)
}

func TestCheckoutComputesShipping(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewCheckoutService(gw, zap.NewNop())

	session, err := svc.CreateSession(context.Background(), CheckoutRequest{
		Items: []CheckoutItem{{ID: "prod_1", Name: "Ethanol 750ml", Price: 2200, Quantity: 1}},
	}, "https://shop.test/")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.test/cs_new", session.URL)

	req := gw.sessionReq
	require.NotNil(t, req)
	assert.Equal(t, domain.CollectionMethodShipping, req.CollectionMethod)
	assert.Equal(t, int64(1825), req.ShippingCost)
	assert.Equal(t, "https://shop.test/success?session_id={CHECKOUT_SESSION_ID}", req.SuccessURL)
	assert.Equal(t, "https://shop.test/cart", req.CancelURL)
	assert.Equal(t, "prod_1", req.Items[0].ID)
}

func TestCheckoutPickupHasNoShipping(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewCheckoutService(gw, zap.NewNop())

	_, err := svc.CreateSession(context.Background(), CheckoutRequest{
		Items:            []CheckoutItem{{Name: "Ethanol 5L", Price: 9000, Quantity: 1}},
		CollectionMethod: "Pickup",
	}, "https://shop.test")
	require.NoError(t, err)
	assert.Equal(t, domain.CollectionMethodPickup, gw.sessionReq.CollectionMethod)
	assert.Zero(t, gw.sessionReq.ShippingCost)
}

func TestCheckoutValidation(t *testing.T) {
	svc := NewCheckoutService(&fakeGateway{}, zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		name  string
		req   CheckoutRequest
		field string
	}{
		{"no items", CheckoutRequest{}, "items"},
		{"bad method", CheckoutRequest{Items: []CheckoutItem{{Name: "A", Quantity: 1}}, CollectionMethod: "drone"}, "collection_method"},
		{"zero quantity", CheckoutRequest{Items: []CheckoutItem{{Name: "A", Quantity: 0}}}, "quantity"},
		{"quantity over limit", CheckoutRequest{Items: []CheckoutItem{{Name: "A", Quantity: MaxItemQuantity + 1}}}, "quantity"},
		{"negative price", CheckoutRequest{Items: []CheckoutItem{{Name: "A", Quantity: 1, Price: -1}}}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSession(ctx, tc.req, "https://shop.test")
			var verr *errors.ErrValidation
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func paidSummary() domain.CheckoutSummary {
	return domain.CheckoutSummary{
		ID:              "cs_paid",
		PaymentStatus:   "paid",
		CustomerEmail:   "buyer@example.com",
		CustomerName:    "Buyer",
		AmountTotal:     4825,
		PaymentIntentID: "pi_paid",
		Metadata: map[string]string{
			"items":            `[{"id":"prod_1","name":"Ethanol 1L","price":3000,"quantity":1}]`,
			"collectionMethod": "shipping",
			"shippingCost":     "1825",
		},
	}
}

func TestRecordFromSessionIsIdempotent(t *testing.T) {
	gw := &fakeGateway{summary: paidSummary()}
	orders := newMemoryOrders()
	svc := NewOrderService(orders, gw, zap.NewNop())
	ctx := context.Background()

	order, err := svc.RecordFromSession(ctx, "cs_paid")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.CollectionMethodShipping, order.CollectionMethod)
	require.NotNil(t, order.ShippingCost)
	assert.Equal(t, int64(1825), *order.ShippingCost)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Ethanol 1L", order.Items[0].Name)

	again, err := svc.RecordFromSession(ctx, "cs_paid")
	require.NoError(t, err)
	assert.Same(t, order, again)
	assert.Equal(t, 1, gw.sessionFetches)
}

func TestRecordFromSessionRequiresPayment(t *testing.T) {
	summary := paidSummary()
	summary.PaymentStatus = "unpaid"
	svc := NewOrderService(newMemoryOrders(), &fakeGateway{summary: summary}, zap.NewNop())

	_, err := svc.RecordFromSession(context.Background(), "cs_paid")
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)

	_, err = svc.RecordFromSession(context.Background(), " ")
	assert.ErrorAs(t, err, &verr)
}

func TestOrderFromSummaryDefaults(t *testing.T) {
	order := orderFromSummary(domain.CheckoutSummary{
		ID:       "cs_1",
		Metadata: map[string]string{"items": "not json", "shippingCost": "abc"},
	}, zap.NewNop())

	assert.Equal(t, domain.CollectionMethodShipping, order.CollectionMethod)
	assert.Empty(t, order.Items)
	assert.Nil(t, order.ShippingCost)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	orders := newMemoryOrders(
		&domain.Order{ID: "cs_a", Status: domain.OrderStatusPending},
		&domain.Order{ID: "cs_b", Status: domain.OrderStatusShipped},
	)
	svc := NewOrderService(orders, &fakeGateway{}, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.UpdateStatus(ctx, "cs_a", domain.OrderStatusCollected))
	o, _ := orders.GetByID(ctx, "cs_a")
	assert.Equal(t, domain.OrderStatusCollected, o.Status)

	err := svc.UpdateStatus(ctx, "cs_b", domain.OrderStatusCollected)
	var transition *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, domain.OrderStatusShipped, transition.From)

	err = svc.UpdateStatus(ctx, "cs_a", domain.OrderStatus("lost"))
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)

	err = svc.UpdateStatus(ctx, "cs_missing", domain.OrderStatusShipped)
	var notFound *errors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestListOrdersByStatus(t *testing.T) {
	orders := newMemoryOrders(
		&domain.Order{ID: "cs_a", Status: domain.OrderStatusPending, CreatedAt: day0},
		&domain.Order{ID: "cs_b", Status: domain.OrderStatusShipped, CreatedAt: day0.Add(time.Hour)},
		&domain.Order{ID: "cs_c", Status: domain.OrderStatusPending, CreatedAt: day0.Add(2 * time.Hour)},
	)
	svc := NewOrderService(orders, &fakeGateway{}, zap.NewNop())

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "cs_c", all[0].ID)

	pending, err := svc.List(context.Background(), "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = svc.List(context.Background(), "lost")
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)
}

func TestCreateRefund(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewRefundService(gw, zap.NewNop())

	amount := int64(700)
	refund, err := svc.Create(context.Background(), CreateRefundRequest{PaymentIntentID: " pi_1 ", Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", gw.refundReq.PaymentIntentID)
	assert.Equal(t, int64(700), refund.Amount)

	zero := int64(0)
	_, err = svc.Create(context.Background(), CreateRefundRequest{PaymentIntentID: "pi_1", Amount: &zero})
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)
}

func TestListProductsAddsVolume(t *testing.T) {
	gw := &fakeGateway{products: []domain.Product{
		{ID: "prod_1", Name: "Ethanol 96% 2.5L", Price: 4500},
		{ID: "prod_2", Name: "Gift card"},
	}}
	listings, err := NewCatalogService(gw, &fakeHerbs{}, zap.NewNop()).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, 2500, listings[0].VolumeML)
	assert.Equal(t, 0, listings[1].VolumeML)
}

func TestSearchHerbsPaging(t *testing.T) {
	herbs := &fakeHerbs{herbs: []*domain.HerbSummary{{ID: "h1"}}, total: 30}
	svc := NewCatalogService(&fakeGateway{}, herbs, zap.NewNop())

	page, err := svc.SearchHerbs(context.Background(), HerbSearchQuery{Query: "rose", Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
	assert.False(t, page.HasMore)
	assert.Equal(t, "rose", herbs.filter.Query)

	page, err = svc.SearchHerbs(context.Background(), HerbSearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, 24, page.Limit)
	assert.True(t, page.HasMore)
}
