package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

// RunMigrations runs data fixes after schema changes. Safe to run on every
// start; each step only touches rows that still need it.
func RunMigrations(db *gorm.DB) error {
	if err := backfillCardDefaults(db); err != nil {
		return err
	}
	return nil
}

// backfillCardDefaults gives cards written before condition and language
// had defaults the NM / JP values new cards receive.
func backfillCardDefaults(db *gorm.DB) error {
	if !db.Migrator().HasTable(&models.Card{}) {
		return nil
	}

	result := db.Exec(`UPDATE cards SET condition = ? WHERE condition IS NULL OR condition = ''`, models.DefaultCondition)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Info().Int64("rows", result.RowsAffected).Msg("Backfilled card condition")
	}

	result = db.Exec(`UPDATE cards SET language = ? WHERE language IS NULL OR language = ''`, models.DefaultLanguage)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Info().Int64("rows", result.RowsAffected).Msg("Backfilled card language")
	}
	return nil
}
