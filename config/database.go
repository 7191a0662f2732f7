package config

import (
	"fmt"

	"hotelsite/repository"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the configured database and migrates the schema.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	dsn := cfg.DatabaseDSN()
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("driver %q has no sql backend", cfg.Database.Driver)
	}

	logLevel := logger.Warn
	if cfg.Log.Level == "debug" {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	if err := repository.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
