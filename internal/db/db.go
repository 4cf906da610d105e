package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cavreg/internal/models"
)

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	g, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	if err := g.AutoMigrate(
		&models.User{},
		&models.Signatory{},
		&models.CAVForm{},
		&models.AuditEntry{},
	); err != nil {
		return nil, fmt.Errorf("db: migrate: %w", err)
	}
	return g, nil
}
