package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

func (s *Store) GetInventory(ctx context.Context, id uint) (*models.Inventory, error) {
	var item models.Inventory
	if err := s.conn(ctx).Preload("Card").First(&item, id).Error; err != nil {
		return nil, notFound(err, "Inventory", id)
	}
	return &item, nil
}

// ListInventory returns holdings in insertion order with their cards.
func (s *Store) ListInventory(ctx context.Context, offset, limit int) ([]models.Inventory, error) {
	query := s.conn(ctx).Preload("Card").Order("id ASC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	items := []models.Inventory{}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// GetInventoryByCard returns the first holding recorded for the card. Card
// ids are not unique across holdings; later holdings are not considered.
func (s *Store) GetInventoryByCard(ctx context.Context, cardID uint) (*models.Inventory, error) {
	var item models.Inventory
	err := s.conn(ctx).Preload("Card").
		Where("card_id = ?", cardID).
		Order("id ASC").
		First(&item).Error
	if err != nil {
		return nil, notFound(err, "Inventory", cardID)
	}
	return &item, nil
}

// CreateInventory validates req before touching the store, then persists the
// holding if its card exists.
func (s *Store) CreateInventory(ctx context.Context, req models.CreateInventoryRequest) (*models.Inventory, error) {
	item, err := models.NewInventory(req, s.now())
	if err != nil {
		return nil, err
	}

	var created models.Inventory
	err = s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cardExists(tx, item.CardID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return fmt.Errorf("failed to create inventory: %w", err)
		}
		return tx.Preload("Card").First(&created, item.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateInventory applies patch to the holding addressed by its own id.
func (s *Store) UpdateInventory(ctx context.Context, id uint, patch models.InventoryPatch) (*models.Inventory, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var result models.Inventory
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Inventory
		if err := tx.First(&item, id).Error; err != nil {
			return notFound(err, "Inventory", id)
		}

		merged, changed, err := models.MergeInventory(item, patch, s.now())
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Omit(clause.Associations).Save(&merged).Error; err != nil {
				return fmt.Errorf("failed to update inventory %d: %w", id, err)
			}
		}
		return tx.Preload("Card").First(&result, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// InventoryStats totals every holding. Holdings without a market price are
// valued at their purchase price, and at zero without either.
func (s *Store) InventoryStats(ctx context.Context) (*models.InventoryStats, error) {
	var stats models.InventoryStats
	err := s.conn(ctx).Model(&models.Inventory{}).
		Select(`
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COUNT(DISTINCT card_id) AS unique_cards,
			COALESCE(SUM(quantity * COALESCE(purchase_price, 0)), 0) AS total_purchase_value,
			COALESCE(SUM(quantity * COALESCE(current_market_price, purchase_price, 0)), 0) AS estimated_value
		`).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute inventory stats: %w", err)
	}
	return &stats, nil
}
