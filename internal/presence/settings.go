package presence

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"shiftgy-backend/internal/models"
	"shiftgy-backend/internal/store"
)

// SettingsRepository owns the singleton presence settings. Reads go through a
// cache filled on first access; updates are applied to the cache before the
// store write, so the caller never reads back a value they didn't just set
// even when the remote write fails.
type SettingsRepository struct {
	store store.SessionStore

	mu     sync.RWMutex
	cached *models.PresenceSettings
}

func NewSettingsRepository(sessionStore store.SessionStore) *SettingsRepository {
	return &SettingsRepository{store: sessionStore}
}

func (r *SettingsRepository) Get(ctx context.Context) models.PresenceSettings {
	r.mu.RLock()
	if r.cached != nil {
		settings := *r.cached
		r.mu.RUnlock()
		return settings
	}
	r.mu.RUnlock()

	settings, err := r.store.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, store.ErrRemoteUnavailable) {
			log.Printf("presence: settings read degraded to defaults: %v", err)
		}
		defaults := models.DefaultPresenceSettings()
		settings = &defaults
	}

	r.mu.Lock()
	r.cached = settings
	r.mu.Unlock()
	return *settings
}

// Update replaces the settings wholesale. Last writer wins; there is no
// version check.
func (r *SettingsRepository) Update(ctx context.Context, settings models.PresenceSettings) models.PresenceSettings {
	settings.Key = models.SettingsKey
	settings.UpdatedAt = time.Now().UTC()

	r.mu.Lock()
	cached := settings
	r.cached = &cached
	r.mu.Unlock()

	if err := r.store.SaveSettings(ctx, &settings); err != nil {
		log.Printf("presence: settings write failed, keeping local value: %v", err)
	}
	return settings
}
