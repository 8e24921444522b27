package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftgy-backend/internal/models"
)

type flakyStore struct {
	*LocalStore
	subscribeErr error
	listErr      error
}

func (s *flakyStore) SubscribeSessions(ctx context.Context) (*Subscription, error) {
	if s.subscribeErr != nil {
		return nil, s.subscribeErr
	}
	return s.LocalStore.SubscribeSessions(ctx)
}

func (s *flakyStore) ListLogs(ctx context.Context) ([]models.PresenceLog, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.LocalStore.ListLogs(ctx)
}

func waitForOpen(t *testing.T, m *Mirror, employeeID string) *models.PresenceLog {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if entry := m.Open(employeeID); entry != nil {
			return entry
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("mirror never saw an open session for %s", employeeID)
	return nil
}

func TestMirrorRematerializesOnChangeEvents(t *testing.T) {
	ctx := context.Background()
	s := newEmptyLocalStore()

	m := NewMirror(s)
	m.Start(ctx)
	defer m.Close()

	assert.Empty(t, m.Logs())

	require.NoError(t, s.InsertLog(ctx, &models.PresenceLog{EmployeeID: "E1", ClockInTime: time.Now(), Method: models.MethodManual}))
	entry := waitForOpen(t, m, "E1")
	assert.Equal(t, "E1", entry.EmployeeID)
}

func TestMirrorFallsBackToFixturesWhenFeedUnavailable(t *testing.T) {
	s := &flakyStore{
		LocalStore:   newEmptyLocalStore(),
		subscribeErr: errors.New("subscribe refused"),
	}

	m := NewMirror(s)
	m.Start(context.Background())
	defer m.Close()

	assert.NotEmpty(t, m.Logs())
}

func TestMirrorKeepsLastKnownGoodOnListFailure(t *testing.T) {
	ctx := context.Background()
	local := newEmptyLocalStore()
	s := &flakyStore{LocalStore: local}

	require.NoError(t, local.InsertLog(ctx, &models.PresenceLog{EmployeeID: "E1", ClockInTime: time.Now(), Method: models.MethodManual}))

	m := NewMirror(s)
	m.Start(ctx)
	defer m.Close()

	require.Len(t, m.Logs(), 1)

	// The next refresh fails; the mirror must keep serving what it has.
	s.listErr = errors.New("backend down")
	_, err := local.CloseLog(ctx, "E1", time.Now())
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	logs := m.Logs()
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Open())
}

func TestMirrorApplyIfNoneOpenGuardsConcurrently(t *testing.T) {
	m := NewMirror(newEmptyLocalStore())

	const attempts = 16
	var wg sync.WaitGroup
	applied := make([]bool, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry := models.PresenceLog{ID: uuid.New(), EmployeeID: "E1", ClockInTime: time.Now().UTC(), Method: models.MethodManual}
			applied[i] = m.ApplyIfNoneOpen(entry)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, ok := range applied {
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
	require.Len(t, m.Logs(), 1)

	// Closed entries release the guard.
	entry := *m.Open("E1")
	entry.Close(entry.ClockInTime.Add(time.Hour))
	m.Apply(entry)
	assert.True(t, m.ApplyIfNoneOpen(models.PresenceLog{ID: uuid.New(), EmployeeID: "E1", ClockInTime: time.Now().UTC(), Method: models.MethodManual}))
}

func TestMirrorApplyReplacesExistingEntry(t *testing.T) {
	m := NewMirror(newEmptyLocalStore())

	entry := models.PresenceLog{ID: uuid.New(), EmployeeID: "E1", ClockInTime: time.Now().UTC(), Method: models.MethodManual}
	m.Apply(entry)
	require.Len(t, m.Logs(), 1)

	entry.Close(entry.ClockInTime.Add(90 * time.Minute))
	m.Apply(entry)

	logs := m.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, 90, logs[0].TotalMinutes)
}
