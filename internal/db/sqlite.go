package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	embeddedmigrations "github.com/terraincognita07/ciclo/migrations"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DefaultBusyTimeout   = 5 * time.Second
	defaultSlowThreshold = time.Second
)

// SQLiteConfig describes how the tracker database is opened. Zero values
// fall back to the defaults used by OpenSQLite.
type SQLiteConfig struct {
	Path string
	// BusyTimeout is how long a connection waits on a locked database before
	// failing with SQLITE_BUSY. The notification loop and HTTP handlers write
	// to the same file.
	BusyTimeout   time.Duration
	SlowThreshold time.Duration
	Logger        *log.Logger
}

func OpenSQLite(dbPath string) (*gorm.DB, error) {
	return Open(SQLiteConfig{Path: dbPath})
}

// Open creates the database directory if needed, connects with the pragmas
// from config and applies the embedded migrations.
func Open(config SQLiteConfig) (*gorm.DB, error) {
	path := strings.TrimSpace(config.Path)
	if path == "" {
		return nil, errors.New("database path is required")
	}
	if config.BusyTimeout <= 0 {
		config.BusyTimeout = DefaultBusyTimeout
	}
	if config.SlowThreshold <= 0 {
		config.SlowThreshold = defaultSlowThreshold
	}
	if config.Logger == nil {
		config.Logger = log.New(os.Stderr, "db: ", log.LstdFlags)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	database, err := gorm.Open(sqlite.Open(sqliteDSN(path, config.BusyTimeout)), &gorm.Config{
		Logger: gormlogger.New(config.Logger, gormlogger.Config{
			SlowThreshold:             config.SlowThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := migrate(database, embeddedmigrations.Files); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	return database, nil
}

// sqliteDSN builds a glebarez/go-sqlite connection string. That driver only
// understands _pragma, _time_format and _txlock query parameters; each
// _pragma runs on every new pooled connection.
func sqliteDSN(path string, busyTimeout time.Duration) string {
	return fmt.Sprintf(
		"%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)",
		path,
		busyTimeout.Milliseconds(),
	)
}
