package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanCancel(t *testing.T) {
	order := &Order{UserID: "user-1"}

	assert.True(t, Caller{ID: "user-1"}.CanCancel(order))
	assert.False(t, Caller{ID: "user-2"}.CanCancel(order))
	assert.True(t, Caller{ID: "user-2", IsAdmin: true}.CanCancel(order))
}

func TestCanComplete(t *testing.T) {
	assert.False(t, Caller{ID: "user-1"}.CanComplete())
	assert.True(t, Caller{ID: "user-1", IsAdmin: true}.CanComplete())
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPlaced.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusCompleted.Terminal())
}
