// import-cards loads cards from a CSV file into the inventory database,
// using the same row rules as POST /api/cards/bulk-upload.
//
// Usage: go run ./cmd/import-cards -file=<cards.csv> [-db=<path>] [-dry-run]
//
// The tool:
// 1. Reads database settings from the environment (DB_DRIVER, DB_PATH, DATABASE_URL)
// 2. Imports every data row, reporting failing rows as "Row N: <cause>"
// 3. With -dry-run, validates rows without writing anything
// 4. Prints the import result as JSON and exits 1 if any row failed
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/card-inventory/backend/internal/config"
	"github.com/codyseavey/card-inventory/backend/internal/database"
	"github.com/codyseavey/card-inventory/backend/internal/logging"
	"github.com/codyseavey/card-inventory/backend/internal/models"
	"github.com/codyseavey/card-inventory/backend/internal/repository"
	"github.com/codyseavey/card-inventory/backend/internal/services"
)

// validatingCreator checks rows without persisting them.
type validatingCreator struct{}

func (validatingCreator) CreateCard(_ context.Context, req models.CreateCardRequest) (*models.Card, error) {
	return models.NewCard(req, time.Now().UTC())
}

func main() {
	file := flag.String("file", "", "Path to the CSV file (required)")
	dbPath := flag.String("db", "", "SQLite database path (overrides DB_PATH)")
	dryRun := flag.Bool("dry-run", false, "Validate rows without writing to the database")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	var creator services.CardCreator = validatingCreator{}
	if !*dryRun {
		path := cfg.DBPath
		if *dbPath != "" {
			path = *dbPath
		}
		db, err := database.Open(database.Options{
			Driver:   cfg.DBDriver,
			Path:     path,
			DSN:      cfg.DatabaseURL,
			LogLevel: logger.Warn,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		creator = repository.New(db)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to open CSV")
	}
	defer f.Close()

	result, err := services.NewBulkImporter(creator).Import(context.Background(), *file, f)
	if errors.Is(err, models.ErrBadUploadFormat) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("Failed to write result")
	}

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
