package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

func TestOpen_MemoryMigratesSchema(t *testing.T) {
	db, err := Open(Options{Path: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)

	for _, table := range []string{"cards", "inventory", "price_history"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.True(t, db.Migrator().HasColumn(&models.PriceHistory{}, "date_recorded"))
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle"})
	assert.Error(t, err)

	_, err = Open(Options{Driver: "postgres"})
	assert.Error(t, err)
}

func TestRunMigrations_BackfillsDefaults(t *testing.T) {
	db, err := Open(Options{Path: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, db.Exec(
		`INSERT INTO cards (name, set_name, condition, language, created_at) VALUES (?, ?, '', '', ?)`,
		"Mew", "Promo", now,
	).Error)

	require.NoError(t, RunMigrations(db))

	var card models.Card
	require.NoError(t, db.First(&card).Error)
	assert.Equal(t, models.DefaultCondition, card.Condition)
	assert.Equal(t, models.DefaultLanguage, card.Language)
}
