package checkout

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/backend"
	"github.com/utafrali/storefront/internal/domain"
	filekv "github.com/utafrali/storefront/internal/storage/file"
	"github.com/utafrali/storefront/internal/store"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

type stubPlacer struct {
	input  backend.CreateOrderInput
	result *backend.CreateOrderResult
	err    error
	calls  int
}

func (p *stubPlacer) CreateOrder(_ context.Context, input backend.CreateOrderInput) (*backend.CreateOrderResult, error) {
	p.calls++
	p.input = input
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

type stubSession struct {
	user *domain.User
}

func (s *stubSession) CurrentUser() *domain.User { return s.user }

func validInfo() domain.CustomerInfo {
	return domain.CustomerInfo{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		AddressLine: "12 Analytical Way",
		City:        "London",
		PostalCode:  "EC1A 1BB",
		Country:     "GB",
	}
}

func newTestCart(t *testing.T) *store.CartStore {
	t.Helper()
	kv, err := filekv.New(t.TempDir())
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return store.NewCartStore(kv, logger)
}

func addShirt(t *testing.T, cart *store.CartStore, qty int) {
	t.Helper()
	product := &domain.Product{ID: "prod-1", Name: "Linen Shirt", Price: 4999, Currency: "USD", Stock: 10}
	require.NoError(t, cart.AddItem(context.Background(), product, nil, nil, qty))
}

func newService(cart *store.CartStore, placer OrderPlacer, user *domain.User) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(cart, placer, &stubSession{user: user}, logger)
}

func TestSubmit(t *testing.T) {
	cart := newTestCart(t)
	addShirt(t, cart, 2)

	placer := &stubPlacer{result: &backend.CreateOrderResult{
		Order: domain.Order{ID: "ord-1", Status: domain.OrderStatusPending, TotalAmount: 9998},
	}}
	svc := newService(cart, placer, nil)

	result, err := svc.Submit(context.Background(), validInfo())
	require.NoError(t, err)
	assert.Equal(t, "ord-1", result.Order.ID)

	require.Len(t, placer.input.Items, 1)
	assert.Equal(t, "prod-1", placer.input.Items[0].ProductID)
	assert.Equal(t, int64(4999), placer.input.Items[0].Price)
	assert.Equal(t, 2, placer.input.Items[0].Quantity)
	assert.Equal(t, "USD", placer.input.Currency)
	assert.NotEmpty(t, placer.input.Reference)
	assert.Empty(t, placer.input.UserID, "guest checkout carries no user id")
}

func TestSubmit_ClearsCartOnSuccess(t *testing.T) {
	cart := newTestCart(t)
	addShirt(t, cart, 1)

	placer := &stubPlacer{result: &backend.CreateOrderResult{Order: domain.Order{ID: "ord-1"}}}
	svc := newService(cart, placer, nil)

	_, err := svc.Submit(context.Background(), validInfo())
	require.NoError(t, err)
	assert.Zero(t, cart.ItemCount())
}

func TestSubmit_FailureRetainsCart(t *testing.T) {
	cart := newTestCart(t)
	addShirt(t, cart, 3)

	placer := &stubPlacer{err: apperrors.Unavailable("backend down")}
	svc := newService(cart, placer, nil)

	result, err := svc.Submit(context.Background(), validInfo())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Equal(t, 3, cart.ItemCount(), "cart must survive a failed submission")
}

func TestSubmit_RejectsEmptyCart(t *testing.T) {
	cart := newTestCart(t)
	placer := &stubPlacer{}
	svc := newService(cart, placer, nil)

	result, err := svc.Submit(context.Background(), validInfo())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Zero(t, placer.calls)
}

func TestSubmit_RejectsInvalidCustomerInfo(t *testing.T) {
	cart := newTestCart(t)
	addShirt(t, cart, 1)
	placer := &stubPlacer{}
	svc := newService(cart, placer, nil)

	tests := []struct {
		name   string
		mutate func(*domain.CustomerInfo)
	}{
		{"missing name", func(i *domain.CustomerInfo) { i.FullName = "" }},
		{"bad email", func(i *domain.CustomerInfo) { i.Email = "not-an-email" }},
		{"missing address", func(i *domain.CustomerInfo) { i.AddressLine = "" }},
		{"bad country code", func(i *domain.CustomerInfo) { i.Country = "GBR" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			tt.mutate(&info)

			_, err := svc.Submit(context.Background(), info)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
	assert.Zero(t, placer.calls)
	assert.Equal(t, 1, cart.ItemCount())
}

func TestSubmit_AttachesSignedInUser(t *testing.T) {
	cart := newTestCart(t)
	addShirt(t, cart, 1)

	placer := &stubPlacer{result: &backend.CreateOrderResult{Order: domain.Order{ID: "ord-1"}}}
	svc := newService(cart, placer, &domain.User{ID: "user-7", Role: domain.RoleCustomer})

	_, err := svc.Submit(context.Background(), validInfo())
	require.NoError(t, err)
	assert.Equal(t, "user-7", placer.input.UserID)
}

func TestSubmit_VariantLinesCarrySnapshot(t *testing.T) {
	cart := newTestCart(t)
	product := &domain.Product{ID: "prod-1", Name: "Linen Shirt", Price: 4999, Currency: "USD"}
	override := int64(5499)
	variant := &domain.Variant{ID: "var-1", ProductID: "prod-1", Price: &override, Stock: 5, Active: true}
	attrs := map[string]string{"Color": "Blue", "Size": "M"}
	require.NoError(t, cart.AddItem(context.Background(), product, variant, attrs, 1))

	placer := &stubPlacer{result: &backend.CreateOrderResult{Order: domain.Order{ID: "ord-1"}}}
	svc := newService(cart, placer, nil)

	_, err := svc.Submit(context.Background(), validInfo())
	require.NoError(t, err)
	require.Len(t, placer.input.Items, 1)
	assert.Equal(t, "var-1", placer.input.Items[0].VariantID)
	assert.Equal(t, int64(5499), placer.input.Items[0].Price)
	assert.Equal(t, "Blue", placer.input.Items[0].Attributes["Color"])
}
