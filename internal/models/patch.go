package models

import (
	"time"
)

// CardPatch is a partial card update. Fields left unset are not touched;
// null clears a nullable field.
type CardPatch struct {
	Name        Optional[string]    `json:"name"`
	CardNumber  Optional[string]    `json:"card_number"`
	SetName     Optional[string]    `json:"set_name"`
	Rarity      Optional[string]    `json:"rarity"`
	Condition   Optional[Condition] `json:"condition"`
	Language    Optional[string]    `json:"language"`
	ImageURL    Optional[string]    `json:"image_url"`
	Description Optional[string]    `json:"description"`
}

// Supplied reports whether the caller set at least one field.
func (p CardPatch) Supplied() bool {
	return p.Name.Set || p.CardNumber.Set || p.SetName.Set || p.Rarity.Set ||
		p.Condition.Set || p.Language.Set || p.ImageURL.Set || p.Description.Set
}

// Validate rejects null on fields that cannot be cleared. Range checks on
// supplied values happen against the merged card.
func (p CardPatch) Validate() error {
	fields := map[string]string{}
	if p.Name.Null {
		fields["name"] = "cannot be null"
	}
	if p.SetName.Null {
		fields["set_name"] = "cannot be null"
	}
	if p.Condition.Null {
		fields["condition"] = "cannot be null"
	}
	if p.Language.Null {
		fields["language"] = "cannot be null"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// MergeCard returns card with the supplied patch fields applied, or a
// *ValidationError if the merged card breaks a constraint. changed is false
// when the patch supplied no field, in which case card is returned as is.
func MergeCard(card Card, p CardPatch, now time.Time) (merged Card, changed bool, err error) {
	if err := p.Validate(); err != nil {
		return card, false, err
	}
	if !p.Supplied() {
		return card, false, nil
	}

	merged = card
	if p.Name.Set {
		merged.Name = p.Name.Value
	}
	if p.CardNumber.Set {
		merged.CardNumber = p.CardNumber.Ptr()
	}
	if p.SetName.Set {
		merged.SetName = p.SetName.Value
	}
	if p.Rarity.Set {
		merged.Rarity = p.Rarity.Ptr()
	}
	if p.Condition.Set {
		merged.Condition = p.Condition.Value
	}
	if p.Language.Set {
		merged.Language = p.Language.Value
	}
	if p.ImageURL.Set {
		merged.ImageURL = p.ImageURL.Ptr()
	}
	if p.Description.Set {
		merged.Description = p.Description.Ptr()
	}
	if err := merged.Validate(); err != nil {
		return card, false, err
	}
	merged.UpdatedAt = &now
	return merged, true, nil
}

// InventoryPatch is a partial holding update. The referenced card cannot be
// changed through a patch.
type InventoryPatch struct {
	Quantity           Optional[int]       `json:"quantity"`
	PurchasePrice      Optional[float64]   `json:"purchase_price"`
	CurrentMarketPrice Optional[float64]   `json:"current_market_price"`
	PurchaseDate       Optional[time.Time] `json:"purchase_date"`
	Location           Optional[string]    `json:"location"`
	Notes              Optional[string]    `json:"notes"`
}

func (p InventoryPatch) Supplied() bool {
	return p.Quantity.Set || p.PurchasePrice.Set || p.CurrentMarketPrice.Set ||
		p.PurchaseDate.Set || p.Location.Set || p.Notes.Set
}

func (p InventoryPatch) Validate() error {
	if p.Quantity.Null {
		return &ValidationError{Fields: map[string]string{"quantity": "cannot be null"}}
	}
	return nil
}

// MergeInventory applies p to item with the same rules as MergeCard.
func MergeInventory(item Inventory, p InventoryPatch, now time.Time) (merged Inventory, changed bool, err error) {
	if err := p.Validate(); err != nil {
		return item, false, err
	}
	if !p.Supplied() {
		return item, false, nil
	}

	merged = item
	if p.Quantity.Set {
		merged.Quantity = p.Quantity.Value
	}
	if p.PurchasePrice.Set {
		merged.PurchasePrice = p.PurchasePrice.Ptr()
	}
	if p.CurrentMarketPrice.Set {
		merged.CurrentMarketPrice = p.CurrentMarketPrice.Ptr()
	}
	if p.PurchaseDate.Set {
		merged.PurchaseDate = p.PurchaseDate.Ptr()
	}
	if p.Location.Set {
		merged.Location = p.Location.Ptr()
	}
	if p.Notes.Set {
		merged.Notes = p.Notes.Ptr()
	}
	if err := merged.Validate(); err != nil {
		return item, false, err
	}
	merged.UpdatedAt = &now
	return merged, true, nil
}
