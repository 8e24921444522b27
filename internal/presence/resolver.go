package presence

import (
	"context"

	"shiftgy-backend/internal/models"
	"shiftgy-backend/internal/store"
)

// Resolver picks which manager serves a caller. Managers are built once at
// startup with an explicit store mode; per request only the choice between
// them depends on the identity, so demo identities never touch the remote
// store.
type Resolver struct {
	forced store.Mode // empty means classify per identity
	local  *Manager
	remote *Manager // nil when no durable store is configured
}

func NewResolver(local, remote *Manager, forced store.Mode) *Resolver {
	return &Resolver{forced: forced, local: local, remote: remote}
}

func (r *Resolver) For(identity *models.CallerIdentity) *Manager {
	if r.remote == nil {
		return r.local
	}
	mode := r.forced
	if mode == "" {
		mode = store.ModeForIdentity(identity)
	}
	if mode == store.ModeRemote {
		return r.remote
	}
	return r.local
}

// BuildManager wires a store into a started manager: mirror, settings
// repository, config registry, location provider.
func BuildManager(ctx context.Context, sessionStore store.SessionStore, location LocationProvider) *Manager {
	mirror := store.NewMirror(sessionStore)
	mirror.Start(ctx)
	return NewManager(
		sessionStore,
		mirror,
		NewSettingsRepository(sessionStore),
		NewConfigRegistry(sessionStore),
		location,
	)
}
