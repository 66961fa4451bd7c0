package gist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/config"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

// fakeGist serves a single gist from memory
type fakeGist struct {
	mu      sync.Mutex
	files   map[string]gistFile
	patches int
	failGet bool
}

func (f *fakeGist) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path != "/gists/g1" || r.Header.Get("Authorization") != "token secret" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if f.failGet {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gistDocument{Files: f.files})
	case http.MethodPatch:
		var doc gistDocument
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for name, file := range doc.Files {
			f.files[name] = file
		}
		f.patches++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gistDocument{Files: f.files})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newStore(t *testing.T, fake *fakeGist) *OrderStore {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return NewOrderStore(config.GistConfig{GistID: "g1", Token: "secret", BaseURL: srv.URL}, zap.NewNop())
}

func TestOrderStoreEmptyGist(t *testing.T) {
	store := newStore(t, &fakeGist{files: map[string]gistFile{}})

	orders, err := store.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = store.GetByID(context.Background(), "cs_missing")
	var notFound *errors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestOrderStoreCreateListUpdate(t *testing.T) {
	fake := &fakeGist{files: map[string]gistFile{}}
	store := newStore(t, fake)
	ctx := context.Background()
	cost := int64(1825)

	older := &domain.Order{
		ID:               "cs_1",
		CustomerEmail:    "a@example.com",
		Items:            []domain.OrderItem{{ID: "prod_1", Name: "Ethanol 1L", Price: 2500, Quantity: 1}},
		TotalAmount:      4325,
		Status:           domain.OrderStatusPending,
		CollectionMethod: domain.CollectionMethodShipping,
		ShippingCost:     &cost,
		ShippingAddress:  &domain.Address{Line1: "1 Test St", City: "Adelaide", Country: "AU"},
		CreatedAt:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &domain.Order{
		ID:               "cs_2",
		CustomerEmail:    "b@example.com",
		TotalAmount:      900,
		Status:           domain.OrderStatusPending,
		CollectionMethod: domain.CollectionMethodPickup,
		CreatedAt:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Create(ctx, older))
	require.NoError(t, store.Create(ctx, newer))
	require.NoError(t, store.Create(ctx, older))
	assert.Equal(t, 2, fake.patches)

	orders, err := store.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "cs_2", orders[0].ID)
	assert.Equal(t, int64(1825), *orders[1].ShippingCost)
	assert.Equal(t, "Adelaide", orders[1].ShippingAddress.City)

	require.NoError(t, store.UpdateStatus(ctx, "cs_1", domain.OrderStatusShipped))

	shipped := domain.OrderStatusShipped
	orders, err = store.List(ctx, &shipped)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "cs_1", orders[0].ID)

	err = store.UpdateStatus(ctx, "cs_missing", domain.OrderStatusShipped)
	var notFound *errors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestOrderStoreKeepsCamelCaseLayout(t *testing.T) {
	fake := &fakeGist{files: map[string]gistFile{
		ordersFile: {Content: `[{"id":"cs_9","customerEmail":"c@example.com","customerName":"C","items":[],"totalAmount":100,"status":"collected","paymentIntentId":"pi_9","createdAt":"2025-03-01T10:00:00Z","collectionMethod":"pickup"}]`},
	}}
	store := newStore(t, fake)

	order, err := store.GetByID(context.Background(), "cs_9")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCollected, order.Status)
	assert.Equal(t, "pi_9", order.PaymentIntentID)
	assert.Equal(t, domain.CollectionMethodPickup, order.CollectionMethod)
	assert.Nil(t, order.ShippingCost)
}

func TestOrderStoreFetchError(t *testing.T) {
	store := newStore(t, &fakeGist{files: map[string]gistFile{}, failGet: true})

	_, err := store.List(context.Background(), nil)
	assert.ErrorContains(t, err, "status 500")
}
