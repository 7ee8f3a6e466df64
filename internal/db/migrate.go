package db

import (
	"errors"
	"fmt"

	"github.com/rezagth/gestion-installations/internal/models"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{&models.Installation{}, &models.Materiel{}}
}

// Migrate applies gorm AutoMigrate then checks the core tables exist.
func Migrate(conn *gorm.DB) error {
	for _, m := range Models() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"installations", "materiels"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}
