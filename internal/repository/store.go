// Package repository persists cards, inventory holdings and price
// observations. Every mutating call runs in a single transaction, and
// returned values are read back from the store so generated fields are
// visible to the caller.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

// Clock returns the time stamped on created and updated rows.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

type Store struct {
	db  *gorm.DB
	now Clock
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, now: utcNow}
}

// WithClock returns a copy of the store that stamps times from now.
func (s *Store) WithClock(now Clock) *Store {
	return &Store{db: s.db, now: now}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// notFound converts gorm's missing-row error into a *models.NotFoundError.
func notFound(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NotFoundError{Resource: resource, ID: id}
	}
	return err
}

func cardExists(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Card{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &models.NotFoundError{Resource: "Card", ID: id}
	}
	return nil
}
