package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PresenceMethod string

const (
	MethodManual    PresenceMethod = "manual"
	MethodScheduled PresenceMethod = "scheduled"
	MethodAutomatic PresenceMethod = "automatic"
)

func (m PresenceMethod) Valid() bool {
	switch m {
	case MethodManual, MethodScheduled, MethodAutomatic:
		return true
	}
	return false
}

type PresenceLog struct {
	ID           uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID   string         `gorm:"size:64;index;uniqueIndex:uniq_employee_open;not null" json:"employeeId"`
	ClockInTime  time.Time      `gorm:"not null" json:"clockInTime"`
	ClockOutTime *time.Time     `json:"clockOutTime,omitempty"`
	TotalMinutes int            `json:"totalMinutes"`
	Method       PresenceMethod `gorm:"size:16;not null" json:"method"`
	Location     string         `gorm:"size:128" json:"location,omitempty"`
	ShiftID      string         `gorm:"size:64" json:"shiftId,omitempty"`
	// OpenMarker is set while the session is open and NULL once closed.
	// The unique (employee_id, open_marker) index is what holds the
	// at-most-one-open-session invariant in the durable store: NULLs do
	// not collide, open rows do.
	OpenMarker *bool     `gorm:"uniqueIndex:uniq_employee_open" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (l *PresenceLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Open reports whether the employee is still clocked in on this log.
func (l *PresenceLog) Open() bool {
	return l.ClockOutTime == nil
}

// Close stamps the clock-out time and records the session length in whole
// minutes, truncating toward zero.
func (l *PresenceLog) Close(at time.Time) {
	out := at.UTC()
	l.ClockOutTime = &out
	l.TotalMinutes = int(out.Sub(l.ClockInTime) / time.Minute)
	l.OpenMarker = nil
}
