package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DataBase *gorm.DB

func NewDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.Path)
	case "postgres":
		var sslmode string
		if os.Getenv("DATABASE_SSLMODE") == "disable" {
			sslmode = "disable"
		} else {
			sslmode = "require"
		}

		dsn := "host=" + cfg.Host +
			" port=" + cfg.Port +
			" user=" + cfg.User +
			" password=" + cfg.Pass +
			" dbname=" + cfg.Name +
			" sslmode=" + sslmode

		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("config: unknown database driver %q", cfg.Driver)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 newLogger,
	})

	if err != nil {
		return nil, err
	}

	return db, nil
}

func ConnectDatabase() error {
	db, err := NewDatabase(App.Database)
	if err != nil {
		return err
	}

	DataBase = db
	return nil
}
