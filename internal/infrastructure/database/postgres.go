package database

import (
	"fmt"
	"log"

	"github.com/sparetrack/sparetrack-api/internal/config"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if viper.GetString("APP_ENV") == "development" {
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

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenancy and accounts
		&entity.Shop{},
		&entity.User{},
		&entity.RetailerProfile{},

		// Catalog
		&entity.Category{},
		&entity.Location{},
		&entity.Item{},

		// Billing and credit
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.LedgerEntry{},

		// Wholesale flow
		&entity.Order{},
		&entity.OrderItem{},
		&entity.ReturnRequest{},
		&entity.DeliveryPartner{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the initial shop and master account when the
// database is empty. Credentials come from config so fresh deployments
// can log in without manual SQL.
func SeedDefaultData(db *gorm.DB, cfg *config.AppConfig) error {
	var count int64
	if err := db.Model(&entity.Shop{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing shops: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding default shop and master user...")

	shop := entity.Shop{
		Name:   cfg.SeedShopName,
		Status: "active",
	}
	if err := db.Create(&shop).Error; err != nil {
		return fmt.Errorf("failed to create default shop: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedMasterPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash master password: %w", err)
	}

	master := entity.User{
		ShopID:   shop.ID,
		Name:     "Master",
		Phone:    cfg.SeedMasterPhone,
		Password: string(hashed),
		Role:     enum.UserRoleMaster,
		Status:   "active",
	}
	if err := db.Create(&master).Error; err != nil {
		return fmt.Errorf("failed to create master user: %w", err)
	}

	log.Printf("Seeded shop %q with master user %s", shop.Name, master.Phone)
	return nil
}
