package database

import (
	"fmt"

	"github.com/liqma/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date. Postgres additionally needs the
// pgvector extension for the embedding column.
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeLike{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Info("migrations applied", zap.String("dialect", db.Dialector.Name()))
	return nil
}
