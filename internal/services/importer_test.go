package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/card-inventory/backend/internal/database"
	"github.com/codyseavey/card-inventory/backend/internal/models"
	"github.com/codyseavey/card-inventory/backend/internal/repository"
)

func newStoreImporter(t *testing.T) (*BulkImporter, *repository.Store) {
	t.Helper()
	db, err := database.Open(database.Options{Path: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	store := repository.New(db)
	return NewBulkImporter(store), store
}

// recordingCreator accepts every request except those whose name is in
// reject.
type recordingCreator struct {
	reject map[string]error
	seen   []models.CreateCardRequest
}

func (c *recordingCreator) CreateCard(_ context.Context, req models.CreateCardRequest) (*models.Card, error) {
	c.seen = append(c.seen, req)
	if err, ok := c.reject[req.Name]; ok {
		return nil, err
	}
	return &models.Card{ID: uint(len(c.seen)), Name: req.Name, SetName: req.SetName}, nil
}

func TestImport_PartialFailure(t *testing.T) {
	importer, store := newStoreImporter(t)
	ctx := context.Background()

	input := "name,card_number,set_name,rarity,condition,language,description\n" +
		"Pikachu,58/102,Base Set,Common,NM,JP,\n" +
		"Raichu,14/102,,Rare,LP,EN,missing set\n" +
		"Eevee,51/64,Jungle,,,,\n"

	result, err := importer.Import(ctx, "cards.csv", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, result.CreatedCount)
	require.Len(t, result.Cards, 2)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 3")
	assert.Contains(t, result.Errors[0], "set_name")

	assert.Equal(t, "Pikachu", result.Cards[0].Name)
	assert.Equal(t, "Eevee", result.Cards[1].Name)
	assert.Equal(t, models.ConditionNearMint, result.Cards[1].Condition)
	assert.Equal(t, "JP", result.Cards[1].Language)
	assert.Nil(t, result.Cards[1].Rarity)
	assert.Nil(t, result.Cards[1].Description)

	cards, err := store.ListCards(ctx, repository.CardFilter{})
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestImport_FirstDataRowIsRowTwo(t *testing.T) {
	importer, _ := newStoreImporter(t)

	input := "name,set_name\n" +
		"Charmander,\n" +
		"Squirtle,Base Set\n" +
		"Bulbasaur,Base Set\n"

	result, err := importer.Import(context.Background(), "cards.csv", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, result.CreatedCount)
	assert.Len(t, result.Cards, 2)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0], "Row 2: "), result.Errors[0])
}

func TestImport_ContinuesAfterStoreAndParseErrors(t *testing.T) {
	creator := &recordingCreator{reject: map[string]error{"Mew": errors.New("database is locked")}}
	importer := NewBulkImporter(creator)

	input := "\ufeffName, Set_Name ,condition\n" +
		"Mew,Promo,NM\n" +
		"Bad\"Quote,Promo,NM\n" +
		"Mewtwo,Base Set,HP,extra\n"

	result, err := importer.Import(context.Background(), "upload.CSV", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, result.CreatedCount)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "Row 2: database is locked", result.Errors[0])
	assert.True(t, strings.HasPrefix(result.Errors[1], "Row 3: "), result.Errors[1])

	require.Len(t, result.Cards, 1)
	assert.Equal(t, "Mewtwo", result.Cards[0].Name)

	last := creator.seen[len(creator.seen)-1]
	assert.Equal(t, "Base Set", last.SetName)
	assert.Equal(t, models.ConditionHeavilyPlayed, last.Condition)
}

func TestImport_HeaderOnly(t *testing.T) {
	importer := NewBulkImporter(&recordingCreator{})

	result, err := importer.Import(context.Background(), "cards.csv", strings.NewReader("name,set_name\n"))
	require.NoError(t, err)
	assert.Zero(t, result.CreatedCount)
	assert.NotNil(t, result.Errors)
	assert.NotNil(t, result.Cards)
}

func TestImport_RejectsBadFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{name: "wrong extension", filename: "cards.xlsx", content: "name,set_name\nPikachu,Base\n"},
		{name: "no extension", filename: "cards", content: "name,set_name\n"},
		{name: "not utf-8", filename: "cards.csv", content: "name,set_name\n\xff\xfe,Base\n"},
		{name: "empty file", filename: "cards.csv", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &recordingCreator{}
			importer := NewBulkImporter(creator)

			result, err := importer.Import(context.Background(), tt.filename, strings.NewReader(tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrBadUploadFormat))
			assert.Nil(t, result)
			assert.Empty(t, creator.seen, "no row may be processed")
		})
	}
}
