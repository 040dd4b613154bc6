package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

const DefaultPriceHistoryLimit = 50

// CreatePriceHistory appends an observation stamped with the current time.
func (s *Store) CreatePriceHistory(ctx context.Context, req models.CreatePriceHistoryRequest) (*models.PriceHistory, error) {
	entry, err := models.NewPriceHistory(req, s.now())
	if err != nil {
		return nil, err
	}

	var created models.PriceHistory
	err = s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cardExists(tx, entry.CardID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(entry).Error; err != nil {
			return fmt.Errorf("failed to record price: %w", err)
		}
		return tx.Preload("Card").First(&created, entry.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListPriceHistory returns up to limit observations for the card, most
// recent first. A non-positive limit uses DefaultPriceHistoryLimit.
func (s *Store) ListPriceHistory(ctx context.Context, cardID uint, limit int) ([]models.PriceHistory, error) {
	if limit <= 0 {
		limit = DefaultPriceHistoryLimit
	}

	entries := []models.PriceHistory{}
	err := s.conn(ctx).Preload("Card").
		Where("card_id = ?", cardID).
		Order("date_recorded DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list price history for card %d: %w", cardID, err)
	}
	return entries, nil
}
