package store

import (
	"context"
	"log"
	"sync"

	"shiftgy-backend/internal/models"
)

// Mirror is the in-memory session log readers scan. It re-materializes from
// the store on every change-feed event and keeps its last known-good state
// across remote failures; when even the first subscription fails it serves
// fixture data so the feature stays usable.
//
// The feed carries this process's own mutations only: remote rows written by
// another service instance surface on the next event here, so remote data
// assumes a single writing instance per tenant.
type Mirror struct {
	store SessionStore

	mu   sync.RWMutex
	logs []models.PresenceLog

	sub  *Subscription
	done chan struct{}
}

func NewMirror(store SessionStore) *Mirror {
	return &Mirror{store: store}
}

// Start subscribes to the change feed and loads the initial session list.
// Never returns an error: subscription failure degrades to fixture data.
func (m *Mirror) Start(ctx context.Context) {
	sub, err := m.store.SubscribeSessions(ctx)
	if err != nil {
		log.Printf("presence: session feed unavailable, serving fixture data: %v", err)
		m.mu.Lock()
		m.logs = DefaultFixtures().Logs
		m.mu.Unlock()
		return
	}
	m.sub = sub
	m.done = make(chan struct{})
	m.materialize(ctx)
	go m.run(ctx)
}

func (m *Mirror) run(ctx context.Context) {
	defer close(m.done)
	for {
		select {
		case _, ok := <-m.sub.Events():
			if !ok {
				return
			}
			m.materialize(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// materialize replaces the mirror with the store's current collection,
// normalizing timestamps to UTC. On failure the previous state stands.
func (m *Mirror) materialize(ctx context.Context) {
	logs, err := m.store.ListLogs(ctx)
	if err != nil {
		log.Printf("presence: session refresh failed, keeping last known state: %v", err)
		return
	}
	for i := range logs {
		logs[i].ClockInTime = logs[i].ClockInTime.UTC()
		if logs[i].ClockOutTime != nil {
			out := logs[i].ClockOutTime.UTC()
			logs[i].ClockOutTime = &out
		}
	}
	m.mu.Lock()
	m.logs = logs
	m.mu.Unlock()
}

// Apply folds a single mutation into the mirror directly: the synchronous
// update on the local path, and the fallback when a remote write degraded.
func (m *Mirror) Apply(entry models.PresenceLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.logs {
		if m.logs[i].ID == entry.ID {
			m.logs[i] = entry
			return
		}
	}
	m.logs = append(m.logs, entry)
}

// ApplyIfNoneOpen appends the entry only when the employee has no open
// session in the mirror, under one lock. It is the degraded-mode counterpart
// of the stores' insert guard.
func (m *Mirror) ApplyIfNoneOpen(entry models.PresenceLog) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.logs) - 1; i >= 0; i-- {
		if m.logs[i].EmployeeID == entry.EmployeeID && m.logs[i].Open() {
			return false
		}
	}
	m.logs = append(m.logs, entry)
	return true
}

func (m *Mirror) Logs() []models.PresenceLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	logs := make([]models.PresenceLog, len(m.logs))
	copy(logs, m.logs)
	return logs
}

// Open returns the employee's open session from the mirror, or nil. A plain
// scan; the mirror holds tens to low hundreds of entries.
func (m *Mirror) Open(employeeID string) *models.PresenceLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.logs) - 1; i >= 0; i-- {
		if m.logs[i].EmployeeID == employeeID && m.logs[i].Open() {
			entry := m.logs[i]
			return &entry
		}
	}
	return nil
}

// Close tears the feed subscription down. Required when the owner is
// disposed, otherwise the subscription leaks.
func (m *Mirror) Close() {
	if m.sub == nil {
		return
	}
	m.sub.Close()
	<-m.done
}
