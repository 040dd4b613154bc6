package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/card-inventory/backend/internal/database"
	"github.com/codyseavey/card-inventory/backend/internal/models"
)

var t0 = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

// stepClock advances one minute on every call.
type stepClock struct {
	mu   sync.Mutex
	next time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Minute)
	return now
}

func setupStore(t *testing.T) (*Store, *stepClock) {
	t.Helper()
	db, err := database.Open(database.Options{Path: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	clock := &stepClock{next: t0}
	return New(db).WithClock(clock.Now), clock
}

func mustCreateCard(t *testing.T, s *Store, name, setName string) *models.Card {
	t.Helper()
	card, err := s.CreateCard(context.Background(), models.CreateCardRequest{Name: name, SetName: setName})
	require.NoError(t, err)
	return card
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
