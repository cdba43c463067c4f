package infra

import (
	"fmt"

	"ledgerdesk/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the SQLite file and runs AutoMigrate for all tables.
// The pool is capped at a single connection: SQLite allows one writer at a
// time, and serializing access through the pool avoids SQLITE_BUSY under
// concurrent requests.
func NewDatabase(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by the SQLite-backed
// integration tests against :memory: databases.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Customer{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Expense{},
		&model.InvoiceTemplate{},
		&model.Invoice{},
	)
}
