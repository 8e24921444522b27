package presence

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"shiftgy-backend/internal/models"
	"shiftgy-backend/internal/store"
)

// Manager is the clock-in/clock-out state machine over one backend. Reads of
// the current session come from the mirror; writes go through the store and
// degrade to mirror-only state when the durable backend is unreachable.
type Manager struct {
	store    store.SessionStore
	mirror   *store.Mirror
	settings *SettingsRepository
	configs  *ConfigRegistry
	location LocationProvider

	now func() time.Time
}

func NewManager(sessionStore store.SessionStore, mirror *store.Mirror, settings *SettingsRepository, configs *ConfigRegistry, location LocationProvider) *Manager {
	if location == nil {
		location = NoLocation{}
	}
	return &Manager{
		store:    sessionStore,
		mirror:   mirror,
		settings: settings,
		configs:  configs,
		location: location,
		now:      time.Now,
	}
}

// ClockIn opens a session for the employee. At most one session per employee
// may be open: a second clock-in fails with ErrSessionAlreadyOpen. The
// settings master gate is advisory and not consulted here.
func (m *Manager) ClockIn(ctx context.Context, employeeID string, method models.PresenceMethod, location string) (*models.PresenceLog, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("employee id required")
	}
	if method == "" {
		method = models.MethodManual
	}
	if !method.Valid() {
		return nil, fmt.Errorf("invalid method %q", method)
	}

	if location == "" && m.settings.Get(ctx).AllowGeoLocation {
		sampled, err := m.location.Capture(ctx)
		if err == nil {
			location = sampled
		}
	}

	entry := &models.PresenceLog{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		ClockInTime: m.now().UTC(),
		Method:      method,
		Location:    location,
	}
	entry.CreatedAt = entry.ClockInTime

	err := m.store.InsertLog(ctx, entry)
	switch {
	case err == nil:
		m.mirror.Apply(*entry)
		return entry, nil
	case errors.Is(err, store.ErrSessionAlreadyOpen):
		return nil, store.ErrSessionAlreadyOpen
	case errors.Is(err, store.ErrRemoteUnavailable):
		log.Printf("presence: clock-in for %s degraded to local state: %v", employeeID, err)
		if !m.mirror.ApplyIfNoneOpen(*entry) {
			return nil, store.ErrSessionAlreadyOpen
		}
		return entry, nil
	default:
		return nil, err
	}
}

// ClockOut closes the employee's open session and records its length in
// whole minutes. Both backends fail with ErrNoActiveSession when there is
// nothing to close.
func (m *Manager) ClockOut(ctx context.Context, employeeID string) (*models.PresenceLog, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("employee id required")
	}

	at := m.now().UTC()
	closed, err := m.store.CloseLog(ctx, employeeID, at)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNoActiveSession):
		return nil, store.ErrNoActiveSession
	case errors.Is(err, store.ErrRemoteUnavailable):
		log.Printf("presence: clock-out for %s degraded to local state: %v", employeeID, err)
		open := m.mirror.Open(employeeID)
		if open == nil {
			return nil, store.ErrNoActiveSession
		}
		open.Close(at)
		closed = open
	default:
		return nil, err
	}

	m.mirror.Apply(*closed)
	return closed, nil
}

// CurrentPresence returns the employee's open session from the mirror, or
// nil when the employee is not clocked in.
func (m *Manager) CurrentPresence(employeeID string) *models.PresenceLog {
	return m.mirror.Open(employeeID)
}

// Logs returns the full session log from the mirror, for the reporting
// consumers that filter client-side.
func (m *Manager) Logs() []models.PresenceLog {
	return m.mirror.Logs()
}

// IsEmployeePresenceEnabled is default-deny: no registered config means the
// feature is off for that employee.
func (m *Manager) IsEmployeePresenceEnabled(ctx context.Context, employeeID string) bool {
	config, ok := m.configs.Get(ctx, employeeID)
	if !ok {
		return false
	}
	return config.Enabled
}

func (m *Manager) Settings() *SettingsRepository {
	return m.settings
}

func (m *Manager) Configs() *ConfigRegistry {
	return m.configs
}

// Close tears down the mirror's feed subscription.
func (m *Manager) Close() {
	m.mirror.Close()
}
