package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shiftgy-backend/internal/models"
)

var _ SessionStore = (*RemoteStore)(nil)

// RemoteStore persists presence data through the durable multi-tenant
// backend. Any database failure is wrapped in ErrRemoteUnavailable so callers
// can degrade to local state.
type RemoteStore struct {
	db       *gorm.DB
	notifier notifier
}

func NewRemoteStore(db *gorm.DB) *RemoteStore {
	return &RemoteStore{db: db}
}

func remoteErr(err error) error {
	return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
}

func (s *RemoteStore) InsertLog(ctx context.Context, log *models.PresenceLog) error {
	open := true
	log.OpenMarker = &open

	// The insert itself is the guard: competing clock-ins race to the
	// unique (employee_id, open_marker) index, not to a read snapshot, so
	// under concurrent transactions exactly one open row can exist.
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSessionAlreadyOpen
		}
		return remoteErr(err)
	}

	s.notifier.publish(ChangeEvent{Type: ChangeCreated, Log: *log})
	return nil
}

func (s *RemoteStore) CloseLog(ctx context.Context, employeeID string, at time.Time) (*models.PresenceLog, error) {
	var closed models.PresenceLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open models.PresenceLog
		err := tx.Where("employee_id = ? AND clock_out_time IS NULL", employeeID).
			Order("created_at desc").First(&open).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveSession
		}
		if err != nil {
			return err
		}
		open.Close(at)
		if err := tx.Save(&open).Error; err != nil {
			return err
		}
		closed = open
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			return nil, ErrNoActiveSession
		}
		return nil, remoteErr(err)
	}

	s.notifier.publish(ChangeEvent{Type: ChangeUpdated, Log: closed})
	return &closed, nil
}

func (s *RemoteStore) OpenLog(ctx context.Context, employeeID string) (*models.PresenceLog, error) {
	var open models.PresenceLog
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND clock_out_time IS NULL", employeeID).
		Order("created_at desc").First(&open).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, remoteErr(err)
	}
	return &open, nil
}

func (s *RemoteStore) ListLogs(ctx context.Context) ([]models.PresenceLog, error) {
	var logs []models.PresenceLog
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&logs).Error; err != nil {
		return nil, remoteErr(err)
	}
	return logs, nil
}

func (s *RemoteStore) GetSettings(ctx context.Context) (*models.PresenceSettings, error) {
	var settings models.PresenceSettings
	err := s.db.WithContext(ctx).Where("`key` = ?", models.SettingsKey).Take(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultPresenceSettings()
		if err := s.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, remoteErr(err)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, remoteErr(err)
	}
	return &settings, nil
}

func (s *RemoteStore) SaveSettings(ctx context.Context, settings *models.PresenceSettings) error {
	settings.Key = models.SettingsKey
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PresenceSettings
		err := tx.Where("`key` = ?", models.SettingsKey).Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(settings).Error
		}
		if err != nil {
			return err
		}
		return tx.Save(settings).Error
	})
	if err != nil {
		return remoteErr(err)
	}
	return nil
}

func (s *RemoteStore) GetEmployeeConfig(ctx context.Context, employeeID string) (*models.EmployeePresenceConfig, error) {
	var config models.EmployeePresenceConfig
	err := s.db.WithContext(ctx).Where("employee_id = ?", employeeID).Take(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, remoteErr(err)
	}
	return &config, nil
}

func (s *RemoteStore) UpsertEmployeeConfig(ctx context.Context, config *models.EmployeePresenceConfig) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.EmployeePresenceConfig
		err := tx.Where("employee_id = ?", config.EmployeeID).Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(config).Error
		}
		if err != nil {
			return err
		}
		existing.RequireClockInOut = config.RequireClockInOut
		existing.Enabled = config.Enabled
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		config.ID = existing.ID
		return nil
	})
	if err != nil {
		return remoteErr(err)
	}
	return nil
}

func (s *RemoteStore) SubscribeSessions(ctx context.Context) (*Subscription, error) {
	return s.notifier.subscribe(), nil
}
