package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeePresenceConfig struct {
	ID                uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID        string    `gorm:"size:64;uniqueIndex;not null" json:"employeeId"`
	RequireClockInOut bool      `json:"requireClockInOut"`
	Enabled           bool      `json:"enabled"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (c *EmployeePresenceConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
