package models

// CatalogCard is a card record from the external catalog in local shape.
// It is a lookup result and is never persisted as is.
type CatalogCard struct {
	Name        string   `json:"name"`
	CardNumber  string   `json:"card_number"`
	SetName     string   `json:"set_name"`
	Rarity      string   `json:"rarity"`
	ImageURL    string   `json:"image_url"`
	TCGID       string   `json:"tcg_id"`
	MarketPrice *float64 `json:"market_price"`
	ReleaseDate string   `json:"release_date"`
	Series      string   `json:"series"`
}

// CatalogSet is the reduced projection of an external catalog set.
type CatalogSet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Series      string `json:"series"`
	ReleaseDate string `json:"releaseDate"`
	Total       int    `json:"total"`
}
