package models

import "time"

const SettingsKey = "global"

// PresenceSettings is a singleton document. Enabled is advisory: it gates the
// feature in the UI but clock-in itself does not consult it.
type PresenceSettings struct {
	Key              string         `gorm:"size:16;primaryKey" json:"-"`
	Enabled          bool           `json:"enabled"`
	ReminderTime     string         `gorm:"size:5" json:"reminderTime"`
	RemindClockOut   bool           `json:"remindClockOut"`
	AllowGeoLocation bool           `json:"allowGeoLocation"`
	DefaultMethod    PresenceMethod `gorm:"size:16" json:"defaultMethod"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func DefaultPresenceSettings() PresenceSettings {
	return PresenceSettings{
		Key:              SettingsKey,
		Enabled:          true,
		ReminderTime:     "09:00",
		RemindClockOut:   false,
		AllowGeoLocation: true,
		DefaultMethod:    MethodManual,
	}
}
