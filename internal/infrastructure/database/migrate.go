package database

import (
	"fmt"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

// Direction selects which way migrations are applied
type Direction = migrate.MigrationDirection

const (
	Up   = migrate.Up
	Down = migrate.Down
)

// Migrate applies the sql-migrate files in dir. max limits how many
// migrations run; 0 means all.
func Migrate(db *gorm.DB, dir string, direction Direction, max int) (int, error) {
	if dir == "" {
		dir = "migrations"
	}
	log.Printf("🔄 Applying migrations from %s/ using sql-migrate...\n", dir)

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate: %w", err)
	}

	n, err := migrate.ExecMax(sqlDB, "postgres", migrations, direction, max)
	if err != nil {
		return n, fmt.Errorf("failed to apply migration: %w", err)
	}

	log.Printf("✅ Applied %d migrations!\n", n)
	return n, nil
}

// AutoMigrate applies every pending migration upwards
func AutoMigrate(db *gorm.DB, dir string) error {
	_, err := Migrate(db, dir, Up, 0)
	return err
}
