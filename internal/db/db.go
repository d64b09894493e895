package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"crm/internal/models"
)

// Open connects to Postgres using the DSN from the environment / .env.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN is empty (check your .env)")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return gdb, nil
}

// Migrate creates or updates the schema for every entity, including the
// declared foreign-key delete policies (user→customer cascade, order
// references set null).
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Tag{},
		&models.Product{},
		&models.Order{},
	)
}
