package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

func TestListPriceHistory_NewestFirstWithLimit(t *testing.T) {
	s, clock := setupStore(t)
	ctx := context.Background()
	card := mustCreateCard(t, s, "Dragonite", "Fossil")

	var recorded []time.Time
	for _, price := range []float64{10, 11, 12} {
		entry, err := s.CreatePriceHistory(ctx, models.CreatePriceHistoryRequest{
			CardID: card.ID,
			Price:  floatPtr(price),
			Source: strPtr("mercari"),
		})
		require.NoError(t, err)
		recorded = append(recorded, entry.RecordedAt)
	}
	require.True(t, clock.next.After(recorded[2]))

	entries, err := s.ListPriceHistory(ctx, card.ID, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, recorded[2].Equal(entries[0].RecordedAt))
	assert.True(t, recorded[1].Equal(entries[1].RecordedAt))
	assert.InDelta(t, 12.0, entries[0].Price, 1e-9)
	assert.Equal(t, "Dragonite", entries[0].Card.Name)

	all, err := s.ListPriceHistory(ctx, card.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListPriceHistory_SameTimestampOrdersByID(t *testing.T) {
	db, _ := setupStore(t)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := db.WithClock(func() time.Time { return fixed })
	ctx := context.Background()
	card := mustCreateCard(t, s, "Articuno", "Fossil")

	first, err := s.CreatePriceHistory(ctx, models.CreatePriceHistoryRequest{CardID: card.ID, Price: floatPtr(1)})
	require.NoError(t, err)
	second, err := s.CreatePriceHistory(ctx, models.CreatePriceHistoryRequest{CardID: card.ID, Price: floatPtr(2)})
	require.NoError(t, err)

	entries, err := s.ListPriceHistory(ctx, card.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestCreatePriceHistory_Rejections(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	card := mustCreateCard(t, s, "Moltres", "Fossil")

	_, err := s.CreatePriceHistory(ctx, models.CreatePriceHistoryRequest{CardID: card.ID})
	assert.True(t, models.IsValidationError(err), "missing price")

	_, err = s.CreatePriceHistory(ctx, models.CreatePriceHistoryRequest{CardID: card.ID, Price: floatPtr(-1)})
	assert.True(t, models.IsValidationError(err), "negative price")

	_, err = s.CreatePriceHistory(ctx, models.CreatePriceHistoryRequest{CardID: card.ID + 9, Price: floatPtr(1)})
	assert.True(t, models.IsNotFound(err), "missing card")

	entries, err := s.ListPriceHistory(ctx, card.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
