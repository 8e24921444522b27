package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"shiftgy-backend/internal/models"
)

var _ SessionStore = (*LocalStore)(nil)

// LocalStore is the ephemeral backend for demo and offline identities. State
// is seeded from fixtures and lost on process restart.
type LocalStore struct {
	mu       sync.RWMutex
	logs     []models.PresenceLog
	settings *models.PresenceSettings
	configs  map[string]models.EmployeePresenceConfig

	notifier notifier
}

func NewLocalStore(seed Fixtures) *LocalStore {
	s := &LocalStore{
		logs:    make([]models.PresenceLog, len(seed.Logs)),
		configs: map[string]models.EmployeePresenceConfig{},
	}
	copy(s.logs, seed.Logs)
	settings := seed.Settings
	if settings.Key == "" {
		settings = models.DefaultPresenceSettings()
	}
	s.settings = &settings
	for _, config := range seed.Configs {
		s.configs[config.EmployeeID] = config
	}
	return s
}

func (s *LocalStore) InsertLog(ctx context.Context, log *models.PresenceLog) error {
	s.mu.Lock()
	if s.openIndex(log.EmployeeID) >= 0 {
		s.mu.Unlock()
		return ErrSessionAlreadyOpen
	}
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	open := true
	log.OpenMarker = &open
	s.logs = append(s.logs, *log)
	s.mu.Unlock()

	s.notifier.publish(ChangeEvent{Type: ChangeCreated, Log: *log})
	return nil
}

func (s *LocalStore) CloseLog(ctx context.Context, employeeID string, at time.Time) (*models.PresenceLog, error) {
	s.mu.Lock()
	index := s.openIndex(employeeID)
	if index < 0 {
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	s.logs[index].Close(at)
	closed := s.logs[index]
	s.mu.Unlock()

	s.notifier.publish(ChangeEvent{Type: ChangeUpdated, Log: closed})
	return &closed, nil
}

func (s *LocalStore) OpenLog(ctx context.Context, employeeID string) (*models.PresenceLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index := s.openIndex(employeeID); index >= 0 {
		log := s.logs[index]
		return &log, nil
	}
	return nil, nil
}

func (s *LocalStore) ListLogs(ctx context.Context) ([]models.PresenceLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := make([]models.PresenceLog, len(s.logs))
	copy(logs, s.logs)
	return logs, nil
}

func (s *LocalStore) GetSettings(ctx context.Context) (*models.PresenceSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		defaults := models.DefaultPresenceSettings()
		s.settings = &defaults
	}
	settings := *s.settings
	return &settings, nil
}

func (s *LocalStore) SaveSettings(ctx context.Context, settings *models.PresenceSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	replacement := *settings
	replacement.Key = models.SettingsKey
	replacement.UpdatedAt = time.Now().UTC()
	s.settings = &replacement
	return nil
}

func (s *LocalStore) GetEmployeeConfig(ctx context.Context, employeeID string) (*models.EmployeePresenceConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	config, ok := s.configs[employeeID]
	if !ok {
		return nil, nil
	}
	return &config, nil
}

func (s *LocalStore) UpsertEmployeeConfig(ctx context.Context, config *models.EmployeePresenceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *config
	if existing, ok := s.configs[config.EmployeeID]; ok {
		stored.ID = existing.ID
	} else if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.UpdatedAt = time.Now().UTC()
	s.configs[config.EmployeeID] = stored
	config.ID = stored.ID
	return nil
}

func (s *LocalStore) SubscribeSessions(ctx context.Context) (*Subscription, error) {
	return s.notifier.subscribe(), nil
}

// openIndex returns the newest open log for the employee, or -1. Callers hold
// the lock.
func (s *LocalStore) openIndex(employeeID string) int {
	for i := len(s.logs) - 1; i >= 0; i-- {
		if s.logs[i].EmployeeID == employeeID && s.logs[i].Open() {
			return i
		}
	}
	return -1
}
