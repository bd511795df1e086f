package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhunikethi/agritech-api/internal/models"
)

func TestOrderFSMHappyPath(t *testing.T) {
	ctx := context.Background()
	order := &models.Order{ID: 1, Status: models.OrderStatusPending}
	sm := NewOrderFSM(order)

	require.NoError(t, sm.Process(ctx))
	assert.Equal(t, models.OrderStatusProcessing, order.Status)

	require.NoError(t, sm.Ship(ctx))
	assert.Equal(t, models.OrderStatusShipped, order.Status)

	require.NoError(t, sm.Deliver(ctx))
	assert.Equal(t, models.OrderStatusDelivered, order.Status)
}

func TestOrderFSMCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("pending order can be cancelled", func(t *testing.T) {
		order := &models.Order{ID: 1, Status: models.OrderStatusPending}
		sm := NewOrderFSM(order)

		require.NoError(t, sm.Cancel(ctx))
		assert.Equal(t, models.OrderStatusCancelled, order.Status)
	})

	t.Run("processing order can be cancelled", func(t *testing.T) {
		order := &models.Order{ID: 2, Status: models.OrderStatusProcessing}
		sm := NewOrderFSM(order)

		require.NoError(t, sm.Cancel(ctx))
		assert.Equal(t, models.OrderStatusCancelled, order.Status)
	})

	t.Run("shipped order cannot be cancelled", func(t *testing.T) {
		order := &models.Order{ID: 3, Status: models.OrderStatusShipped}
		sm := NewOrderFSM(order)

		err := sm.Cancel(ctx)
		require.Error(t, err)
		assert.Equal(t, models.OrderStatusShipped, order.Status)
	})
}

func TestOrderFSMInvalidTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("cannot ship a pending order", func(t *testing.T) {
		order := &models.Order{ID: 1, Status: models.OrderStatusPending}
		sm := NewOrderFSM(order)

		err := sm.Ship(ctx)
		require.Error(t, err)
		assert.Equal(t, models.OrderStatusPending, order.Status)
	})

	t.Run("cannot deliver an order that was never shipped", func(t *testing.T) {
		order := &models.Order{ID: 2, Status: models.OrderStatusProcessing}
		sm := NewOrderFSM(order)

		err := sm.Deliver(ctx)
		require.Error(t, err)
	})

	t.Run("delivered order is terminal", func(t *testing.T) {
		order := &models.Order{ID: 3, Status: models.OrderStatusDelivered}
		sm := NewOrderFSM(order)

		assert.Error(t, sm.Process(ctx))
		assert.Error(t, sm.Ship(ctx))
		assert.Error(t, sm.Cancel(ctx))
		assert.Equal(t, models.OrderStatusDelivered, order.Status)
	})

	t.Run("cancelled order is terminal", func(t *testing.T) {
		order := &models.Order{ID: 4, Status: models.OrderStatusCancelled}
		sm := NewOrderFSM(order)

		assert.False(t, sm.Can("process"))
		assert.False(t, sm.Can("ship"))
		assert.False(t, sm.Can("deliver"))
		assert.False(t, sm.Can("cancel"))
	})
}
