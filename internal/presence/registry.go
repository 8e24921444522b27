package presence

import (
	"context"
	"log"
	"sync"

	"shiftgy-backend/internal/models"
	"shiftgy-backend/internal/store"
)

// ConfigRegistry caches per-employee presence configs read-through from the
// store, with the same optimistic-local-update policy as settings.
type ConfigRegistry struct {
	store store.SessionStore

	mu    sync.RWMutex
	cache map[string]models.EmployeePresenceConfig
}

func NewConfigRegistry(sessionStore store.SessionStore) *ConfigRegistry {
	return &ConfigRegistry{
		store: sessionStore,
		cache: map[string]models.EmployeePresenceConfig{},
	}
}

// Get returns the employee's config and whether one exists.
func (r *ConfigRegistry) Get(ctx context.Context, employeeID string) (models.EmployeePresenceConfig, bool) {
	r.mu.RLock()
	if config, ok := r.cache[employeeID]; ok {
		r.mu.RUnlock()
		return config, true
	}
	r.mu.RUnlock()

	config, err := r.store.GetEmployeeConfig(ctx, employeeID)
	if err != nil {
		log.Printf("presence: config read failed for %s: %v", employeeID, err)
		return models.EmployeePresenceConfig{}, false
	}
	if config == nil {
		return models.EmployeePresenceConfig{}, false
	}

	r.mu.Lock()
	r.cache[employeeID] = *config
	r.mu.Unlock()
	return *config, true
}

// Upsert stores the config keyed by employee: an existing config is updated
// in place, otherwise one is inserted.
func (r *ConfigRegistry) Upsert(ctx context.Context, config models.EmployeePresenceConfig) models.EmployeePresenceConfig {
	if err := r.store.UpsertEmployeeConfig(ctx, &config); err != nil {
		log.Printf("presence: config write failed for %s, keeping local value: %v", config.EmployeeID, err)
	}

	r.mu.Lock()
	r.cache[config.EmployeeID] = config
	r.mu.Unlock()
	return config
}
