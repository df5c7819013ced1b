package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/quickserve-app/quickserve-api/internal/config"
	"github.com/quickserve-app/quickserve-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Booking{},
		&models.BookingDetails{},
		&models.Conversation{},
		&models.Message{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Postgres unique indexes treat NULLs as distinct, so uq_conversation
	// alone cannot arbitrate general (service-less) threads. The partial
	// index covers that case.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_conversation_general
		 ON conversations (customer_id, provider_id)
		 WHERE service_id IS NULL`,
	).Error; err != nil {
		log.Fatalf("failed to create conversation index: %v", err)
	}

	return db
}
