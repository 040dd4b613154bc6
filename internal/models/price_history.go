package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PriceHistory is an append-only market price observation for a card.
type PriceHistory struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CardID     uint      `json:"card_id" gorm:"not null;index"`
	Card       Card      `json:"card" gorm:"foreignKey:CardID"`
	Price      float64   `json:"price" gorm:"not null"`
	Source     *string   `json:"source" gorm:"size:100"` // mercari, yahoo_auction, tcg_player, ...
	RecordedAt time.Time `json:"date_recorded" gorm:"column:date_recorded;not null;index"`
	Condition  *string   `json:"condition" gorm:"size:50"`
	Notes      *string   `json:"notes"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}

func (p PriceHistory) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.CardID, validation.Required),
		validation.Field(&p.Price, validation.Min(0.0)),
		validation.Field(&p.Source, validation.RuneLength(0, 100)),
		validation.Field(&p.Condition, validation.RuneLength(0, 50)),
	)
	return newValidationError(err)
}

// CreatePriceHistoryRequest is the body of a new observation. Price is a
// pointer so that an omitted price is reported rather than read as zero.
type CreatePriceHistoryRequest struct {
	CardID    uint     `json:"card_id"`
	Price     *float64 `json:"price"`
	Source    *string  `json:"source"`
	Condition *string  `json:"condition"`
	Notes     *string  `json:"notes"`
}

func NewPriceHistory(req CreatePriceHistoryRequest, recordedAt time.Time) (*PriceHistory, error) {
	if req.Price == nil {
		return nil, &ValidationError{
			Fields: map[string]string{"price": "cannot be blank"},
			msg:    "price: cannot be blank.",
		}
	}
	entry := &PriceHistory{
		CardID:     req.CardID,
		Price:      *req.Price,
		Source:     req.Source,
		RecordedAt: recordedAt,
		Condition:  req.Condition,
		Notes:      req.Notes,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}
