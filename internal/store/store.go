package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"shiftgy-backend/internal/models"
)

var (
	// ErrNoActiveSession is returned by CloseLog when the employee has no
	// open session. It is the one error this subsystem surfaces to users.
	ErrNoActiveSession = errors.New("no active session")

	// ErrSessionAlreadyOpen is returned by InsertLog when the employee
	// already has an open session.
	ErrSessionAlreadyOpen = errors.New("session already open")

	// ErrRemoteUnavailable wraps any durable-store failure. Callers above
	// the store degrade to local state instead of surfacing it.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

var demoAddresses = map[string]struct{}{
	"admin@shiftgy.com": {},
	"demo@shiftgy.com":  {},
	"mock@shiftgy.com":  {},
}

// ModeForIdentity classifies a caller identity as demo/local or real/remote.
// Stores are always constructed with an explicit Mode; this is the routing
// rule callers use to pick one.
func ModeForIdentity(identity *models.CallerIdentity) Mode {
	if identity == nil || identity.Email == "" {
		return ModeLocal
	}
	email := strings.ToLower(identity.Email)
	if _, ok := demoAddresses[email]; ok {
		return ModeLocal
	}
	if strings.Contains(email, "mock") || strings.Contains(email, "demo") {
		return ModeLocal
	}
	return ModeRemote
}

// SessionStore is the capability interface over presence data. LocalStore
// keeps everything in process; RemoteStore persists through the durable
// backend. Out-of-scope consumers (reporting, employee admin) depend on the
// model shapes, not on this interface.
type SessionStore interface {
	// InsertLog creates a new open session, failing with
	// ErrSessionAlreadyOpen if the employee already has one. The check and
	// the insert are a single guarded step.
	InsertLog(ctx context.Context, log *models.PresenceLog) error

	// CloseLog closes the employee's open session at the given time and
	// returns the closed log, or ErrNoActiveSession.
	CloseLog(ctx context.Context, employeeID string, at time.Time) (*models.PresenceLog, error)

	// OpenLog returns the employee's open session, or nil when none.
	OpenLog(ctx context.Context, employeeID string) (*models.PresenceLog, error)

	ListLogs(ctx context.Context) ([]models.PresenceLog, error)

	// GetSettings returns the singleton settings, creating defaults on
	// first access.
	GetSettings(ctx context.Context) (*models.PresenceSettings, error)
	SaveSettings(ctx context.Context, settings *models.PresenceSettings) error

	// GetEmployeeConfig returns (nil, nil) when no config exists for the
	// employee.
	GetEmployeeConfig(ctx context.Context, employeeID string) (*models.EmployeePresenceConfig, error)
	UpsertEmployeeConfig(ctx context.Context, config *models.EmployeePresenceConfig) error

	// SubscribeSessions returns a live subscription over the whole session
	// collection. The caller must Close it when done.
	SubscribeSessions(ctx context.Context) (*Subscription, error)
}
