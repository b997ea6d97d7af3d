// Package repositories provides the data access layer. Each repository wraps
// a *gorm.DB handle owned by the process entry point; there is no package
// level database singleton.
package repositories

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"veleco/internal/config"
	"veleco/internal/models"
)

// InitDB opens the postgres connection, applies pool settings from the config
// and migrates the settlement schema. The returned handle is injected into
// every repository.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !cfg.IsProduction(),
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema for the settlement subsystem.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Settlement{},
		&models.SettlementDetail{},
		&models.Payment{},
		&models.SellerBalance{},
	)
}
