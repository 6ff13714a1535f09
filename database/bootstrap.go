// database/bootstrap.go
package database

import (
	"fmt"
	"strings"

	mysqlDriver "github.com/go-sql-driver/mysql"
	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Uvais-khan078/village360/config"
	"github.com/Uvais-khan078/village360/entities"
)

// Open connects to the configured driver. It returns a nil *gorm.DB for the
// memory driver.
func Open(cfg config.AppConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
	switch cfg.DBDriver {
	case "memory":
		return nil, nil
	case "mysql":
		dsn, err := mysqlDSN(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		db, err := gorm.Open(mysql.Open(dsn), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		return db, nil
	case "sqlite", "":
		db, err := gorm.Open(sqlite.Open(SQLiteDSN(cfg.DBPath)), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}

// SQLiteDSN turns on foreign keys so cascades and SET NULL behave like MySQL.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// mysqlDSN forces parseTime so DATETIME columns scan into time.Time.
func mysqlDSN(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("DATABASE_URL is required for the mysql driver")
	}
	c, err := mysqlDriver.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	c.ParseTime = true
	return c.FormatDSN(), nil
}

// Migrate creates or updates every table. Referenced tables come first.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Village{},
		&entities.Project{},
		&entities.Report{},
		&entities.Amenity{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
