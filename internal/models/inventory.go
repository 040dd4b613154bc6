package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Inventory is one holding of a card. Several holdings may reference the
// same card.
type Inventory struct {
	ID                 uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	CardID             uint       `json:"card_id" gorm:"not null;index"`
	Card               Card       `json:"card" gorm:"foreignKey:CardID"`
	Quantity           int        `json:"quantity" gorm:"not null;default:0"`
	PurchasePrice      *float64   `json:"purchase_price"`
	CurrentMarketPrice *float64   `json:"current_market_price"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	Location           *string    `json:"location" gorm:"size:255"`
	Notes              *string    `json:"notes"`
	CreatedAt          time.Time  `json:"created_at" gorm:"autoCreateTime:false;not null"`
	UpdatedAt          *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

func (Inventory) TableName() string {
	return "inventory"
}

func (i Inventory) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.CardID, validation.Required),
		validation.Field(&i.Quantity, validation.Min(0)),
		validation.Field(&i.PurchasePrice, validation.Min(0.0)),
		validation.Field(&i.CurrentMarketPrice, validation.Min(0.0)),
		validation.Field(&i.Location, validation.RuneLength(0, 255)),
	)
	return newValidationError(err)
}

type CreateInventoryRequest struct {
	CardID             uint       `json:"card_id"`
	Quantity           int        `json:"quantity"`
	PurchasePrice      *float64   `json:"purchase_price"`
	CurrentMarketPrice *float64   `json:"current_market_price"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	Location           *string    `json:"location"`
	Notes              *string    `json:"notes"`
}

// NewInventory builds a holding stamped with createdAt. Negative numeric
// fields are rejected before any store interaction.
func NewInventory(req CreateInventoryRequest, createdAt time.Time) (*Inventory, error) {
	item := &Inventory{
		CardID:             req.CardID,
		Quantity:           req.Quantity,
		PurchasePrice:      req.PurchasePrice,
		CurrentMarketPrice: req.CurrentMarketPrice,
		PurchaseDate:       req.PurchaseDate,
		Location:           req.Location,
		Notes:              req.Notes,
		CreatedAt:          createdAt,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// InventoryStats summarizes every holding. EstimatedValue prices each
// holding at its current market price, falling back to the purchase price.
type InventoryStats struct {
	TotalQuantity      int     `json:"total_quantity"`
	UniqueCards        int     `json:"unique_cards"`
	TotalPurchaseValue float64 `json:"total_purchase_value"`
	EstimatedValue     float64 `json:"estimated_value"`
}
