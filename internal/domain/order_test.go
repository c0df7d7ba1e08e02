package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("teleported"))
	assert.False(t, IsValidStatus(""))
}

func TestCanTransitionTo_HappyPath(t *testing.T) {
	o := &Order{Status: OrderStatusPending}
	assert.True(t, o.CanTransitionTo(OrderStatusConfirmed))
	assert.True(t, o.CanTransitionTo(OrderStatusCanceled))
	assert.False(t, o.CanTransitionTo(OrderStatusShipped))
}

func TestCanTransitionTo_TerminalStates(t *testing.T) {
	canceled := &Order{Status: OrderStatusCanceled}
	for _, s := range ValidStatuses() {
		assert.False(t, canceled.CanTransitionTo(s), s)
	}

	refunded := &Order{Status: OrderStatusRefunded}
	for _, s := range ValidStatuses() {
		assert.False(t, refunded.CanTransitionTo(s), s)
	}
}

func TestCanTransitionTo_UnknownStatus(t *testing.T) {
	o := &Order{Status: "bogus"}
	assert.False(t, o.CanTransitionTo(OrderStatusConfirmed))
}

func TestCanTransitionTo_ShippedToDeliveredOnly(t *testing.T) {
	o := &Order{Status: OrderStatusShipped}
	assert.True(t, o.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, o.CanTransitionTo(OrderStatusCanceled))
}
