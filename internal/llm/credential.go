package llm

import (
	"strings"
	"sync"
)

// CredentialStore holds provider API keys in process memory. It is seeded
// once at startup from the environment, handed explicitly to the provider
// clients that need it, and wiped on shutdown. Keys never appear in logs,
// responses, or any persisted state.
type CredentialStore struct {
	mu   sync.RWMutex
	keys map[string][]byte
}

// NewCredentialStore returns an empty store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{keys: make(map[string][]byte)}
}

// Set registers a provider key. Blank keys are ignored so absent env vars
// surface later as ErrAuth rather than as an empty Authorization header.
func (s *CredentialStore) Set(provider, key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[provider] = []byte(key)
}

// Get returns the key for a provider, if one was configured.
func (s *CredentialStore) Get(provider string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.keys[provider]
	if !ok || len(key) == 0 {
		return "", false
	}
	return string(key), true
}

// Clear zeroes every stored key and empties the store. Calls made through
// a provider after Clear fail with ErrAuth.
func (s *CredentialStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for provider, key := range s.keys {
		for i := range key {
			key[i] = 0
		}
		delete(s.keys, provider)
	}
}
