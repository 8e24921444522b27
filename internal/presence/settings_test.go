package presence

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftgy-backend/internal/models"
	"shiftgy-backend/internal/store"
)

type settingsDownStore struct {
	*store.LocalStore
}

func (s *settingsDownStore) GetSettings(ctx context.Context) (*models.PresenceSettings, error) {
	return nil, fmt.Errorf("%w: timeout", store.ErrRemoteUnavailable)
}

func (s *settingsDownStore) SaveSettings(ctx context.Context, settings *models.PresenceSettings) error {
	return fmt.Errorf("%w: timeout", store.ErrRemoteUnavailable)
}

func TestSettingsFallBackToDefaultsWhenRemoteDown(t *testing.T) {
	repo := NewSettingsRepository(&settingsDownStore{LocalStore: emptyLocalStore()})
	settings := repo.Get(context.Background())
	assert.Equal(t, models.DefaultPresenceSettings().ReminderTime, settings.ReminderTime)
}

func TestSettingsUpdateIsOptimisticOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(&settingsDownStore{LocalStore: emptyLocalStore()})

	updated := repo.Update(ctx, models.PresenceSettings{
		Enabled:       false,
		ReminderTime:  "10:15",
		DefaultMethod: models.MethodAutomatic,
	})
	assert.False(t, updated.Enabled)

	// The caller reads back exactly what they set, despite the failed write.
	reread := repo.Get(ctx)
	assert.Equal(t, "10:15", reread.ReminderTime)
	assert.Equal(t, models.MethodAutomatic, reread.DefaultMethod)
}

func TestConfigRegistryCachesReads(t *testing.T) {
	ctx := context.Background()
	local := emptyLocalStore()
	registry := NewConfigRegistry(local)

	_, ok := registry.Get(ctx, "E1")
	assert.False(t, ok)

	require.NoError(t, local.UpsertEmployeeConfig(ctx, &models.EmployeePresenceConfig{EmployeeID: "E1", Enabled: true}))

	config, ok := registry.Get(ctx, "E1")
	require.True(t, ok)
	assert.True(t, config.Enabled)

	// Cached now; a second read does not need the store.
	config, ok = registry.Get(ctx, "E1")
	require.True(t, ok)
	assert.Equal(t, "E1", config.EmployeeID)
}
