package database

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sangkips/nippo-api/internal/config"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/enum"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool, log zerolog.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log zerolog.Logger) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		// Master data
		&entity.User{},
		&entity.Store{},
		&entity.Product{},

		// Sales activity
		&entity.Visit{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.DailyReport{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedDefaultData creates the administrator named by ADMIN_EMAIL / ADMIN_NAME if missing
func SeedDefaultData(db *gorm.DB, log zerolog.Logger) error {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	if adminEmail == "" {
		return nil
	}
	adminName := viper.GetString("ADMIN_NAME")
	if adminName == "" {
		adminName = "Administrator"
	}

	var existing entity.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		log.Debug().Str("email", adminEmail).Msg("admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	admin := entity.User{
		Email:    adminEmail,
		Name:     adminName,
		Role:     enum.UserRoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info().Str("email", adminEmail).Msg("admin user created")
	return nil
}
