package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescoach-dev/sales-coach/internal/infrastructure/cache"
)

func TestStateManager_ConsumeIsOneTimeUse(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()

	sm := NewStateManager(store)

	state, err := sm.GenerateState("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, state)

	userID, ok := sm.ConsumeState(state)
	assert.True(t, ok)
	assert.Equal(t, "user-123", userID)

	// Second consume must fail
	_, ok = sm.ConsumeState(state)
	assert.False(t, ok)
}

func TestStateManager_UnknownStateRejected(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()

	sm := NewStateManager(store)

	_, ok := sm.ConsumeState("forged-state")
	assert.False(t, ok)
}
