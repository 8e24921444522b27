package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftgy-backend/internal/models"
)

func newEmptyLocalStore() *LocalStore {
	return NewLocalStore(Fixtures{Settings: models.DefaultPresenceSettings()})
}

func TestLocalStoreInsertAndClose(t *testing.T) {
	ctx := context.Background()
	s := newEmptyLocalStore()

	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry := &models.PresenceLog{EmployeeID: "E1", ClockInTime: in, Method: models.MethodManual}
	require.NoError(t, s.InsertLog(ctx, entry))
	assert.NotEqual(t, uuid.Nil, entry.ID)

	open, err := s.OpenLog(ctx, "E1")
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.True(t, open.Open())

	closed, err := s.CloseLog(ctx, "E1", in.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 480, closed.TotalMinutes)
	assert.False(t, closed.Open())

	open, err = s.OpenLog(ctx, "E1")
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestLocalStoreRejectsSecondOpenSession(t *testing.T) {
	ctx := context.Background()
	s := newEmptyLocalStore()

	require.NoError(t, s.InsertLog(ctx, &models.PresenceLog{EmployeeID: "E1", ClockInTime: time.Now(), Method: models.MethodManual}))
	err := s.InsertLog(ctx, &models.PresenceLog{EmployeeID: "E1", ClockInTime: time.Now(), Method: models.MethodManual})
	assert.ErrorIs(t, err, ErrSessionAlreadyOpen)

	logs, err := s.ListLogs(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestLocalStoreCloseWithoutOpenSession(t *testing.T) {
	s := newEmptyLocalStore()
	_, err := s.CloseLog(context.Background(), "E1", time.Now())
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestLocalStoreConcurrentClockInsYieldOneOpenSession(t *testing.T) {
	ctx := context.Background()
	s := newEmptyLocalStore()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.InsertLog(ctx, &models.PresenceLog{EmployeeID: "E1", ClockInTime: time.Now(), Method: models.MethodManual})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSessionAlreadyOpen)
		}
	}
	assert.Equal(t, 1, succeeded)

	open := 0
	logs, err := s.ListLogs(ctx)
	require.NoError(t, err)
	for _, entry := range logs {
		if entry.Open() {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func TestLocalStoreSettingsDefaultsOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	s := &LocalStore{configs: map[string]models.EmployeePresenceConfig{}}

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SettingsKey, settings.Key)
	assert.Equal(t, models.MethodManual, settings.DefaultMethod)

	settings.Enabled = false
	settings.ReminderTime = "08:30"
	require.NoError(t, s.SaveSettings(ctx, settings))

	reread, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.False(t, reread.Enabled)
	assert.Equal(t, "08:30", reread.ReminderTime)
}

func TestLocalStoreConfigUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newEmptyLocalStore()

	config := models.EmployeePresenceConfig{EmployeeID: "E1", RequireClockInOut: true, Enabled: true}
	require.NoError(t, s.UpsertEmployeeConfig(ctx, &config))
	firstID := config.ID

	again := models.EmployeePresenceConfig{EmployeeID: "E1", RequireClockInOut: true, Enabled: true}
	require.NoError(t, s.UpsertEmployeeConfig(ctx, &again))
	assert.Equal(t, firstID, again.ID)

	stored, err := s.GetEmployeeConfig(ctx, "E1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Enabled)
}

func TestLocalStoreMissingConfigReturnsNil(t *testing.T) {
	s := newEmptyLocalStore()
	config, err := s.GetEmployeeConfig(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestLocalStorePublishesChangeEvents(t *testing.T) {
	ctx := context.Background()
	s := newEmptyLocalStore()

	sub, err := s.SubscribeSessions(ctx)
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, s.InsertLog(ctx, &models.PresenceLog{EmployeeID: "E1", ClockInTime: time.Now(), Method: models.MethodManual}))

	select {
	case event := <-sub.Events():
		assert.Equal(t, ChangeCreated, event.Type)
		assert.Equal(t, "E1", event.Log.EmployeeID)
	case <-time.After(time.Second):
		t.Fatal("no change event received")
	}

	_, err = s.CloseLog(ctx, "E1", time.Now())
	require.NoError(t, err)

	select {
	case event := <-sub.Events():
		assert.Equal(t, ChangeUpdated, event.Type)
		assert.False(t, event.Log.Open())
	case <-time.After(time.Second):
		t.Fatal("no change event received")
	}
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	s := newEmptyLocalStore()
	sub, err := s.SubscribeSessions(context.Background())
	require.NoError(t, err)

	sub.Close()
	sub.Close()

	// A closed subscription no longer receives events.
	require.NoError(t, s.InsertLog(context.Background(), &models.PresenceLog{EmployeeID: "E1", ClockInTime: time.Now(), Method: models.MethodManual}))
	_, ok := <-sub.Events()
	assert.False(t, ok)
}
