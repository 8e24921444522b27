package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"shiftgy-backend/internal/models"
)

func Open(dsn string) (*gorm.DB, error) {
	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the store maps to ErrSessionAlreadyOpen.
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	return database, nil
}

func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.PresenceLog{},
		&models.PresenceSettings{},
		&models.EmployeePresenceConfig{},
	)
}
