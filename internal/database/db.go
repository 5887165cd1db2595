package database

import (
	"fmt"
	"time"

	"aerocode/internal/config"
	"aerocode/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const retryDelay = 2 * time.Second

// Init connects to PostgreSQL, migrates the schema and seeds the default
// admin employee. The connection is retried while the database starts up.
func Init(cfg *config.Config, log *zap.Logger) error {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	attempts := cfg.Database.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= attempts; i++ {
		log.Info("trying to connect to DB", zap.Int("attempt", i), zap.Int("max_attempts", attempts))

		db, err = gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
		if err == nil {
			log.Info("connected to DB successfully")
			break
		}

		log.Warn("failed to connect to DB", zap.Error(err))
		if i < attempts {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect to db after %d attempts: %w", attempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db

	if err := SeedAdmin(db, cfg.Admin, log); err != nil {
		log.Warn("failed to seed default admin", zap.Error(err))
	}
	return nil
}

// Migrate creates the entity tables and the implicit join tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Aircraft{},
		&models.Part{},
		&models.Stage{},
		&models.Test{},
		&models.Employee{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// SeedAdmin creates an Admin employee when none exists yet, so a fresh
// install can log in.
func SeedAdmin(db *gorm.DB, admin config.AdminConfig, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Employee{}).
		Where("level = ?", models.LevelAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin employee: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	emp := models.Employee{
		ID:           admin.ID,
		Name:         "Administrador",
		Username:     admin.Username,
		PasswordHash: string(hash),
		Level:        models.LevelAdmin,
	}
	if err := db.Create(&emp).Error; err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	log.Info("created default admin employee", zap.String("id", emp.ID), zap.String("username", emp.Username))
	return nil
}
