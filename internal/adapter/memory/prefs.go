// Package memory holds in-process repository implementations used when no
// database is configured.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

type prefKey struct {
	clientID string
	key      string
}

// PrefsRepo stores client preferences in a map. Contents are lost on restart.
type PrefsRepo struct {
	mu    sync.RWMutex
	prefs map[prefKey]domain.Preference
}

// NewPrefsRepo creates an empty in-memory preference repository.
func NewPrefsRepo() *PrefsRepo {
	return &PrefsRepo{prefs: make(map[prefKey]domain.Preference)}
}

// Get returns the stored preference or domain.ErrNotFound.
func (r *PrefsRepo) Get(_ context.Context, clientID, key string) (*domain.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prefs[prefKey{clientID, key}]
	if !ok {
		return nil, fmt.Errorf("pref %s/%s: %w", clientID, key, domain.ErrNotFound)
	}
	return &p, nil
}

// Upsert stores the preference, replacing any previous value.
func (r *PrefsRepo) Upsert(_ context.Context, p domain.Preference) (*domain.Preference, error) {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.prefs[prefKey{p.ClientID, p.Key}] = p
	r.mu.Unlock()

	return &p, nil
}

// Ping always succeeds.
func (r *PrefsRepo) Ping(context.Context) error { return nil }
