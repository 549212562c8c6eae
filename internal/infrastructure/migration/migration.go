// Package migration applies the gorm auto-migration for all persisted
// models.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/adepa-shop/adepa/internal/shared/logger"
)

// Run applies auto-migration for every registered model.
func Run(db *gorm.DB) error {
	models := AutoMigrateModels()

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	logger.Info("database migration completed", "models", len(models))
	return nil
}
