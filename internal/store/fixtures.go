package store

import (
	"time"

	"github.com/google/uuid"

	"shiftgy-backend/internal/models"
)

// Fixtures seed the local store and back the mirror when the durable store
// cannot be reached.
type Fixtures struct {
	Logs     []models.PresenceLog
	Settings models.PresenceSettings
	Configs  []models.EmployeePresenceConfig
}

func DefaultFixtures() Fixtures {
	yesterday := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Minute)

	shift := func(in time.Time, minutes int, employeeID string) models.PresenceLog {
		log := models.PresenceLog{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			ClockInTime: in,
			Method:      models.MethodManual,
			CreatedAt:   in,
		}
		log.Close(in.Add(time.Duration(minutes) * time.Minute))
		return log
	}

	return Fixtures{
		Logs: []models.PresenceLog{
			shift(yesterday.Add(9*time.Hour), 480, "demo-emp-1"),
			shift(yesterday.Add(13*time.Hour), 245, "demo-emp-2"),
		},
		Settings: models.DefaultPresenceSettings(),
		Configs: []models.EmployeePresenceConfig{
			{ID: uuid.New(), EmployeeID: "demo-emp-1", RequireClockInOut: true, Enabled: true},
			{ID: uuid.New(), EmployeeID: "demo-emp-2", RequireClockInOut: true, Enabled: true},
		},
	}
}
