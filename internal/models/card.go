package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Condition is the physical grade of a card.
type Condition string

const (
	ConditionNearMint      Condition = "NM"
	ConditionLightlyPlayed Condition = "LP"
	ConditionModPlayed     Condition = "MP"
	ConditionHeavilyPlayed Condition = "HP"
	ConditionDamaged       Condition = "DMG"
)

const (
	DefaultCondition = ConditionNearMint
	DefaultLanguage  = "JP"
)

// AllConditions returns every grade a card may carry
func AllConditions() []Condition {
	return []Condition{
		ConditionNearMint,
		ConditionLightlyPlayed,
		ConditionModPlayed,
		ConditionHeavilyPlayed,
		ConditionDamaged,
	}
}

func conditionRule() validation.Rule {
	conditions := AllConditions()
	elems := make([]interface{}, len(conditions))
	for i, c := range conditions {
		elems[i] = c
	}
	return validation.In(elems...).Error("must be one of NM, LP, MP, HP, DMG")
}

type Card struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"size:255;not null;index"`
	CardNumber  *string    `json:"card_number" gorm:"size:50"`
	SetName     string     `json:"set_name" gorm:"size:255;not null"`
	Rarity      *string    `json:"rarity" gorm:"size:50"`
	Condition   Condition  `json:"condition" gorm:"size:50;not null;default:'NM'"`
	Language    string     `json:"language" gorm:"size:10;not null;default:'JP'"`
	ImageURL    *string    `json:"image_url"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime:false;not null"`
	UpdatedAt   *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// Validate checks the persisted-field constraints of a card.
func (c Card) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&c.CardNumber, validation.RuneLength(0, 50)),
		validation.Field(&c.SetName, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&c.Rarity, validation.RuneLength(0, 50)),
		validation.Field(&c.Condition, validation.Required, conditionRule()),
		validation.Field(&c.Language, validation.Required, validation.RuneLength(1, 10)),
	)
	return newValidationError(err)
}

// CreateCardRequest carries the caller-supplied fields of a new card.
// Empty Condition and Language fall back to NM and JP.
type CreateCardRequest struct {
	Name        string    `json:"name"`
	CardNumber  *string   `json:"card_number"`
	SetName     string    `json:"set_name"`
	Rarity      *string   `json:"rarity"`
	Condition   Condition `json:"condition"`
	Language    string    `json:"language"`
	ImageURL    *string   `json:"image_url"`
	Description *string   `json:"description"`
}

// NewCard builds a card stamped with createdAt, or returns a
// *ValidationError without touching any store.
func NewCard(req CreateCardRequest, createdAt time.Time) (*Card, error) {
	card := &Card{
		Name:        req.Name,
		CardNumber:  req.CardNumber,
		SetName:     req.SetName,
		Rarity:      req.Rarity,
		Condition:   req.Condition,
		Language:    req.Language,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		CreatedAt:   createdAt,
	}
	if card.Condition == "" {
		card.Condition = DefaultCondition
	}
	if card.Language == "" {
		card.Language = DefaultLanguage
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}
	return card, nil
}

// CardDetails is a card together with its holdings and price observations.
type CardDetails struct {
	Card
	InventoryItems []Inventory    `json:"inventory_items"`
	PriceHistory   []PriceHistory `json:"price_history"`
}
