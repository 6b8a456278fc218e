package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/sangkips/nippo-api/internal/domain/pricing"
	"github.com/sangkips/nippo-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	svc    *OrderService
	orders *memOrders
	store  *entity.Store
	beer   *entity.Product
	sake   *entity.Product
	userID uuid.UUID
	clock  time.Time
}

func newOrderFixture() *orderFixture {
	store := &entity.Store{ID: uuid.New(), Name: "Sakura Liquor", Address: "Tokyo"}
	beer := &entity.Product{ID: uuid.New(), ProductCode: "B-01", Name: "Lager 350ml", UnitPrice: decimal.NewFromInt(1000)}
	sake := &entity.Product{ID: uuid.New(), ProductCode: "S-01", Name: "Junmai 720ml", UnitPrice: decimal.NewFromInt(500)}

	orders := newMemOrders()
	clock := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	svc := NewOrderService(orders, newMemProducts(beer, sake), newMemStores(store), pricing.NewCalculator(0))
	svc.now = func() time.Time { return clock }

	return &orderFixture{svc: svc, orders: orders, store: store, beer: beer, sake: sake, userID: uuid.New(), clock: clock}
}

func (f *orderFixture) items() []OrderItemInput {
	return []OrderItemInput{
		{ProductID: f.beer.ID, Quantity: 2},
		{ProductID: f.sake.ID, Quantity: 3},
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("prices items at list price with a rate discount", func(t *testing.T) {
		f := newOrderFixture()
		order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
			UserID:       f.userID,
			StoreID:      f.store.ID,
			Items:        f.items(),
			DiscountRate: ptr(decimal.NewFromInt(10)),
		})
		require.NoError(t, err)

		assert.Equal(t, "3500", order.Subtotal.String())
		assert.Equal(t, "350", order.DiscountAmount.String())
		assert.Equal(t, "3150", order.TotalAmount.String())
		assert.Equal(t, enum.OrderStatusPending, order.Status)
		assert.Equal(t, f.clock, order.OrderDate)
		assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))

		require.Len(t, order.Items, 2)
		assert.Equal(t, "Lager 350ml", order.Items[0].ProductName)
		assert.Equal(t, "2000", order.Items[0].Amount.String())
		assert.Equal(t, order.ID, order.Items[1].OrderID)
	})

	t.Run("explicit unit price and amount discount win", func(t *testing.T) {
		f := newOrderFixture()
		order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
			UserID:         f.userID,
			StoreID:        f.store.ID,
			Items:          []OrderItemInput{{ProductID: f.beer.ID, Quantity: 1, UnitPrice: ptr(decimal.NewFromInt(900))}},
			DiscountRate:   ptr(decimal.NewFromInt(50)),
			DiscountAmount: ptr(decimal.NewFromInt(100)),
		})
		require.NoError(t, err)

		assert.Equal(t, "900", order.Subtotal.String())
		assert.Equal(t, "100", order.DiscountAmount.String())
		assert.Equal(t, "800", order.TotalAmount.String())
		assert.Nil(t, order.DiscountRate)
	})

	t.Run("unknown store", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
			UserID: f.userID, StoreID: uuid.New(), Items: f.items(),
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
			UserID:  f.userID,
			StoreID: f.store.ID,
			Items:   []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
		assert.Empty(t, f.orders.orders)
	})

	t.Run("no items", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{UserID: f.userID, StoreID: f.store.ID})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
	})
}

func TestUpdateOrder(t *testing.T) {
	create := func(t *testing.T, f *orderFixture) *entity.Order {
		t.Helper()
		order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
			UserID:       f.userID,
			StoreID:      f.store.ID,
			Items:        f.items(),
			DiscountRate: ptr(decimal.NewFromInt(10)),
		})
		require.NoError(t, err)
		return order
	}

	t.Run("replacing items re-prices with the existing rate", func(t *testing.T) {
		f := newOrderFixture()
		order := create(t, f)

		updated, err := f.svc.UpdateOrder(context.Background(), order.ID, &UpdateOrderInput{
			Items: []OrderItemInput{{ProductID: f.sake.ID, Quantity: 4}},
		})
		require.NoError(t, err)

		assert.True(t, f.orders.replaced)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, "2000", updated.Subtotal.String())
		assert.Equal(t, "200", updated.DiscountAmount.String())
		assert.Equal(t, "1800", updated.TotalAmount.String())
	})

	t.Run("discount change re-prices existing items", func(t *testing.T) {
		f := newOrderFixture()
		order := create(t, f)

		updated, err := f.svc.UpdateOrder(context.Background(), order.ID, &UpdateOrderInput{
			DiscountAmount: ptr(decimal.NewFromInt(500)),
		})
		require.NoError(t, err)

		assert.False(t, f.orders.replaced)
		assert.Equal(t, "3500", updated.Subtotal.String())
		assert.Equal(t, "500", updated.DiscountAmount.String())
		assert.Equal(t, "3000", updated.TotalAmount.String())
		assert.Nil(t, updated.DiscountRate)
	})

	t.Run("status change leaves money untouched", func(t *testing.T) {
		f := newOrderFixture()
		order := create(t, f)

		updated, err := f.svc.UpdateOrder(context.Background(), order.ID, &UpdateOrderInput{
			Status: ptr(enum.OrderStatusShipped),
		})
		require.NoError(t, err)

		assert.Equal(t, enum.OrderStatusShipped, updated.Status)
		assert.Equal(t, order.TotalAmount.String(), updated.TotalAmount.String())
		assert.Len(t, updated.Items, 2)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newOrderFixture()
		order := create(t, f)

		_, err := f.svc.UpdateOrder(context.Background(), order.ID, &UpdateOrderInput{
			Status: ptr(enum.OrderStatus("LOST")),
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.svc.UpdateOrder(context.Background(), uuid.New(), &UpdateOrderInput{})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})
}

func TestDeleteOrder(t *testing.T) {
	f := newOrderFixture()
	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID: f.userID, StoreID: f.store.ID, Items: f.items(),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteOrder(context.Background(), order.ID))
	err = f.svc.DeleteOrder(context.Background(), order.ID)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestCreateOrder_RejectsInvalidMoney(t *testing.T) {
	tests := []struct {
		name  string
		input func(f *orderFixture) *CreateOrderInput
		field string
	}{
		{
			name: "negative unit price override",
			input: func(f *orderFixture) *CreateOrderInput {
				return &CreateOrderInput{Items: []OrderItemInput{{ProductID: f.beer.ID, Quantity: 1, UnitPrice: ptr(decimal.NewFromInt(-900))}}}
			},
			field: "items[0].unit_price",
		},
		{
			name: "zero quantity",
			input: func(f *orderFixture) *CreateOrderInput {
				return &CreateOrderInput{Items: []OrderItemInput{{ProductID: f.beer.ID, Quantity: 1}, {ProductID: f.sake.ID}}}
			},
			field: "items[1].quantity",
		},
		{
			name: "negative discount amount",
			input: func(f *orderFixture) *CreateOrderInput {
				return &CreateOrderInput{Items: f.items(), DiscountAmount: ptr(decimal.NewFromInt(-100))}
			},
			field: "discount_amount",
		},
		{
			name: "negative discount rate",
			input: func(f *orderFixture) *CreateOrderInput {
				return &CreateOrderInput{Items: f.items(), DiscountRate: ptr(decimal.NewFromInt(-5))}
			},
			field: "discount_rate",
		},
		{
			name: "discount rate above 100",
			input: func(f *orderFixture) *CreateOrderInput {
				return &CreateOrderInput{Items: f.items(), DiscountRate: ptr(decimal.NewFromInt(1000))}
			},
			field: "discount_rate",
		},
		{
			name: "discount rate finer than two places",
			input: func(f *orderFixture) *CreateOrderInput {
				return &CreateOrderInput{Items: f.items(), DiscountRate: ptr(decimal.RequireFromString("10.125"))}
			},
			field: "discount_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			input := tt.input(f)
			input.UserID = f.userID
			input.StoreID = f.store.ID

			_, err := f.svc.CreateOrder(context.Background(), input)
			require.Error(t, err)

			appErr := apperror.GetAppError(err)
			assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
			require.Len(t, appErr.Errors, 1)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)
			assert.Empty(t, f.orders.orders)
		})
	}
}

func TestCreateOrder_AcceptsBoundaryMoney(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID:       f.userID,
		StoreID:      f.store.ID,
		Items:        []OrderItemInput{{ProductID: f.beer.ID, Quantity: 1, UnitPrice: ptr(decimal.Zero)}, {ProductID: f.sake.ID, Quantity: 2}},
		DiscountRate: ptr(decimal.RequireFromString("12.50")),
	})
	require.NoError(t, err)

	assert.Equal(t, "1000", order.Subtotal.String())
	assert.Equal(t, "125", order.DiscountAmount.String())
	assert.Equal(t, "12.5", order.DiscountRate.String())
}

func TestUpdateOrder_RejectsInvalidMoney(t *testing.T) {
	tests := []struct {
		name  string
		input func(f *orderFixture) *UpdateOrderInput
		field string
	}{
		{
			name: "negative discount amount",
			input: func(*orderFixture) *UpdateOrderInput {
				return &UpdateOrderInput{DiscountAmount: ptr(decimal.NewFromInt(-1))}
			},
			field: "discount_amount",
		},
		{
			name: "discount rate above 100",
			input: func(*orderFixture) *UpdateOrderInput {
				return &UpdateOrderInput{DiscountRate: ptr(decimal.NewFromInt(150))}
			},
			field: "discount_rate",
		},
		{
			name: "discount rate finer than two places",
			input: func(*orderFixture) *UpdateOrderInput {
				return &UpdateOrderInput{DiscountRate: ptr(decimal.RequireFromString("10.125"))}
			},
			field: "discount_rate",
		},
		{
			name: "negative unit price in replacement items",
			input: func(f *orderFixture) *UpdateOrderInput {
				return &UpdateOrderInput{Items: []OrderItemInput{{ProductID: f.sake.ID, Quantity: 1, UnitPrice: ptr(decimal.NewFromInt(-1))}}}
			},
			field: "items[0].unit_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
				UserID: f.userID, StoreID: f.store.ID, Items: f.items(),
			})
			require.NoError(t, err)

			_, err = f.svc.UpdateOrder(context.Background(), order.ID, tt.input(f))
			require.Error(t, err)

			appErr := apperror.GetAppError(err)
			assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
			require.Len(t, appErr.Errors, 1)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)

			stored, err := f.orders.GetWithDetails(context.Background(), order.ID)
			require.NoError(t, err)
			assert.Equal(t, "3500", stored.TotalAmount.String())
			assert.Len(t, stored.Items, 2)
		})
	}
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateDashboards(context.Context) error {
	c.calls++
	return nil
}

func TestOrderWritesEvictDashboards(t *testing.T) {
	f := newOrderFixture()
	inv := &countingInvalidator{}
	f.svc.WithDashboardInvalidator(inv)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, &CreateOrderInput{UserID: f.userID, StoreID: f.store.ID, Items: f.items()})
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)

	_, err = f.svc.CreateOrder(ctx, &CreateOrderInput{UserID: f.userID, StoreID: f.store.ID, Items: f.items(), DiscountAmount: ptr(decimal.NewFromInt(-1))})
	require.Error(t, err)
	assert.Equal(t, 1, inv.calls)

	_, err = f.svc.UpdateOrder(ctx, order.ID, &UpdateOrderInput{Status: ptr(enum.OrderStatusShipped)})
	require.NoError(t, err)
	assert.Equal(t, 2, inv.calls)

	require.NoError(t, f.svc.DeleteOrder(ctx, order.ID))
	assert.Equal(t, 3, inv.calls)
}
