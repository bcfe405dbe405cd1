package database

import (
	"log"

	"disparo-dashboard/internal/config"
	"disparo-dashboard/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init connects to Postgres when DATABASE_URL is set and falls back to a
// local sqlite file otherwise, then runs the schema migration.
func Init(cfg *config.Config) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		log.Printf("DATABASE_URL not set, using sqlite at %s", cfg.DBPath)
		dialector = sqlite.Open(cfg.DBPath)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}

	log.Println("Database initialized successfully")
}

// Migrate creates or updates the dashboard tables. Split out so tests can
// run it against their own in-memory handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Contact{},
		&models.Dispatch{},
		&models.Instance{},
		&models.DispatchParams{},
		&models.Template{},
		&models.User{},
	)
}
