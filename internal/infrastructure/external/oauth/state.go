package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// Store interface for state storage (memory or Redis backed)
type Store interface {
	Set(key string, value string, expiration time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
}

// StateManager manages OAuth state tokens for CSRF protection. Each state
// is bound to the user who started the flow so the callback knows which
// account to attach the calendar tokens to.
type StateManager struct {
	store      Store
	expiration time.Duration
}

// NewStateManager creates a new state manager
func NewStateManager(store Store) *StateManager {
	return &StateManager{
		store:      store,
		expiration: 15 * time.Minute, // State expires in 15 minutes
	}
}

// GenerateState generates a random state token bound to the given user ID
func (sm *StateManager) GenerateState(userID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	state := base64.URLEncoding.EncodeToString(b)

	key := fmt.Sprintf("oauth:state:%s", state)
	sm.store.Set(key, userID, sm.expiration)

	return state, nil
}

// ConsumeState validates a state token and returns the bound user ID
// (one-time use)
func (sm *StateManager) ConsumeState(state string) (string, bool) {
	key := fmt.Sprintf("oauth:state:%s", state)

	userID, exists := sm.store.Get(key)
	if !exists || userID == "" {
		return "", false
	}

	// Delete the state immediately (one-time use)
	sm.store.Delete(key)

	return userID, true
}
