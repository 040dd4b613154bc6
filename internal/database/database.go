package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

// Options selects the backing store.
type Options struct {
	// Driver is "sqlite" (default) or "postgres"
	Driver string
	// Path is the sqlite file, or ":memory:"
	Path string
	// DSN is the postgres connection string
	DSN      string
	LogLevel logger.LogLevel
}

// Open connects to the store named by opts and brings the schema up to date.
func Open(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(zerologWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", opts.Driver, err)
	}

	if opts.Driver != "postgres" && isMemory(opts.Path) {
		// every pooled connection to :memory: is a separate database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info().Str("driver", driverName(opts)).Msg("Database connected successfully")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the cards, inventory and price_history tables
// and backfills data written by older schema revisions.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Card{}, &models.Inventory{}, &models.PriceHistory{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		return fmt.Errorf("data migrations: %w", err)
	}
	log.Info().Msg("Database migration completed")
	return nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case "", "sqlite":
		path := opts.Path
		if path == "" {
			path = "./card_inventory.db"
		}
		return sqlite.Open(path), nil
	case "postgres":
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		return postgres.New(postgres.Config{
			DSN:                  opts.DSN,
			PreferSimpleProtocol: true,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

func driverName(opts Options) string {
	if opts.Driver == "" {
		return "sqlite"
	}
	return opts.Driver
}

func isMemory(path string) bool {
	return path == ":memory:" || path == "file::memory:" || path == "file::memory:?cache=shared"
}

// zerologWriter routes gorm's logger through the global zerolog logger.
type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...interface{}) {
	log.Debug().Str("component", "gorm").Msgf(format, args...)
}
