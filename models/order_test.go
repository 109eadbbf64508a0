package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForward(t *testing.T) {
	assert.NoError(t, CanTransition(OrderStatusPending, OrderStatusAccepted))
	assert.NoError(t, CanTransition(OrderStatusAccepted, OrderStatusShipped))
	assert.NoError(t, CanTransition(OrderStatusShipped, OrderStatusOutForDelivery))
	assert.NoError(t, CanTransition(OrderStatusOutForDelivery, OrderStatusDelivered))

	// Skipping intermediate statuses is allowed, only going back is not.
	assert.NoError(t, CanTransition(OrderStatusPending, OrderStatusDelivered))
}

func TestCanTransitionRejectsBackward(t *testing.T) {
	err := CanTransition(OrderStatusShipped, OrderStatusPending)
	assert.ErrorIs(t, err, ErrBackwardTransition)

	err = CanTransition(OrderStatusDelivered, OrderStatusAccepted)
	assert.ErrorIs(t, err, ErrTerminalOrderStatus)
}

func TestCanTransitionCancelled(t *testing.T) {
	for _, from := range []OrderStatus{
		OrderStatusPending,
		OrderStatusAccepted,
		OrderStatusShipped,
		OrderStatusOutForDelivery,
	} {
		assert.NoError(t, CanTransition(from, OrderStatusCancelled), "from %s", from)
	}

	// Terminal states stay terminal, including Cancelled itself.
	assert.ErrorIs(t, CanTransition(OrderStatusDelivered, OrderStatusCancelled), ErrTerminalOrderStatus)
	assert.ErrorIs(t, CanTransition(OrderStatusCancelled, OrderStatusPending), ErrTerminalOrderStatus)
}

func TestCanTransitionSameStatusIsNoOp(t *testing.T) {
	assert.NoError(t, CanTransition(OrderStatusShipped, OrderStatusShipped))
	assert.NoError(t, CanTransition(OrderStatusCancelled, OrderStatusCancelled))
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus(" Out_For_Delivery ")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusOutForDelivery, s)

	_, err = ParseOrderStatus("returned")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}
