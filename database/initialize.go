package database

import (
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"

	"storefront/config"
)

// InitializeDatabase opens the storage database and applies pending migrations
func InitializeDatabase(cfg config.DatabaseConfig) *sqlx.DB {
	dbConn := db.GetDBConnection(db.DatabaseConfig{
		DRIVER: cfg.Driver,
		DB:     cfg.Path,
	})

	err := migrations.Migrate(dbConn, cfg.MigrationsDir)
	if err != nil {
		logger.Error("Error while running migration", zap.Error(err), zap.String("dir", cfg.MigrationsDir))
		os.Exit(1)
	}

	logger.Info("Database initialized successfully", zap.String("driver", cfg.Driver), zap.String("path", cfg.Path))
	return dbConn
}
