package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

// CardFilter selects a page of cards. Search matches a case-insensitive
// substring of the name. A non-positive Limit returns every remaining row.
type CardFilter struct {
	Offset int
	Limit  int
	Search string
}

func (s *Store) GetCard(ctx context.Context, id uint) (*models.Card, error) {
	var card models.Card
	if err := s.conn(ctx).First(&card, id).Error; err != nil {
		return nil, notFound(err, "Card", id)
	}
	return &card, nil
}

// ListCards returns cards in insertion order.
func (s *Store) ListCards(ctx context.Context, f CardFilter) ([]models.Card, error) {
	query := s.conn(ctx).Model(&models.Card{}).Order("id ASC")
	if search := strings.TrimSpace(f.Search); search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(search))+"%")
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	cards := []models.Card{}
	if err := query.Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes s match literally inside a LIKE pattern escaped by '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// CreateCard validates req, stamps the creation time and persists the card.
func (s *Store) CreateCard(ctx context.Context, req models.CreateCardRequest) (*models.Card, error) {
	card, err := models.NewCard(req, s.now())
	if err != nil {
		return nil, err
	}

	var created models.Card
	err = s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(card).Error; err != nil {
			return err
		}
		return tx.First(&created, card.ID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return &created, nil
}

// UpdateCard merges the supplied patch fields onto the stored card. A patch
// that supplies no field returns the card without writing.
func (s *Store) UpdateCard(ctx context.Context, id uint, patch models.CardPatch) (*models.Card, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var result models.Card
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var card models.Card
		if err := tx.First(&card, id).Error; err != nil {
			return notFound(err, "Card", id)
		}

		merged, changed, err := models.MergeCard(card, patch, s.now())
		if err != nil {
			return err
		}
		if !changed {
			result = card
			return nil
		}
		if err := tx.Save(&merged).Error; err != nil {
			return fmt.Errorf("failed to update card %d: %w", id, err)
		}
		return tx.First(&result, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteCard removes the card and, in the same transaction, every holding
// and price observation referencing it. It reports whether the card existed.
func (s *Store) DeleteCard(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cardExists(tx, id); err != nil {
			if models.IsNotFound(err) {
				return nil
			}
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.Inventory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.PriceHistory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Card{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	return deleted, nil
}

// GetCardDetails returns the card with all of its holdings and its most
// recent price observations.
func (s *Store) GetCardDetails(ctx context.Context, id uint) (*models.CardDetails, error) {
	card, err := s.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &models.CardDetails{Card: *card, InventoryItems: []models.Inventory{}}
	if err := s.conn(ctx).Preload("Card").Where("card_id = ?", id).Order("id ASC").Find(&details.InventoryItems).Error; err != nil {
		return nil, fmt.Errorf("failed to load inventory for card %d: %w", id, err)
	}
	history, err := s.ListPriceHistory(ctx, id, DefaultPriceHistoryLimit)
	if err != nil {
		return nil, err
	}
	details.PriceHistory = history
	return details, nil
}
