package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/codyseavey/card-inventory/backend/internal/metrics"
	"github.com/codyseavey/card-inventory/backend/internal/models"
)

const (
	DefaultPokemonTCGBaseURL = "https://api.pokemontcg.io/v2"
	DefaultPokemonTCGTimeout = 10 * time.Second

	searchPageSize = 20
)

// errCatalogNotFound marks a 404 from the catalog; it is not a failure.
var errCatalogNotFound = errors.New("catalog card not found")

// finishPriority is the order in which finish types are consulted for a
// market price.
var finishPriority = []string{"normal", "holofoil", "reverseHolofoil"}

type PokemonTCGOptions struct {
	BaseURL string
	APIKey  string
	// Timeout bounds each request, including time spent waiting on the
	// rate limiter.
	Timeout time.Duration
	// RateLimit is requests per second. Zero or less disables limiting.
	RateLimit float64
}

// PokemonTCGService looks cards up in the Pokemon TCG catalog. Failures are
// logged and reported as empty results, never as errors.
type PokemonTCGService struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	timeout time.Duration
}

func NewPokemonTCGService(opts PokemonTCGOptions) *PokemonTCGService {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultPokemonTCGBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultPokemonTCGTimeout
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &PokemonTCGService{
		client:  &http.Client{},
		limiter: limiter,
		baseURL: baseURL,
		apiKey:  opts.APIKey,
		timeout: timeout,
	}
}

type pokemonListResponse[T any] struct {
	Data []T `json:"data"`
}

type pokemonCard struct {
	TCGPlayer *pokemonTCGPrice `json:"tcgplayer"`
	Set       pokemonSet       `json:"set"`
	Images    pokemonImages    `json:"images"`
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Number    string           `json:"number"`
	Rarity    string           `json:"rarity"`
}

type pokemonSet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Series      string `json:"series"`
	ReleaseDate string `json:"releaseDate"`
	Total       int    `json:"total"`
}

type pokemonImages struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

type pokemonTCGPrice struct {
	Prices map[string]pokemonPriceSet `json:"prices"`
}

// pokemonPriceSet holds the statistics for one finish type. Only market is
// consulted; a missing and a null market are treated alike.
type pokemonPriceSet struct {
	Low    *float64 `json:"low"`
	Mid    *float64 `json:"mid"`
	High   *float64 `json:"high"`
	Market *float64 `json:"market"`
}

// SearchCards matches cards by exact name, conjoined with a set name match
// when setName is not empty. At most 20 cards are returned.
func (s *PokemonTCGService) SearchCards(ctx context.Context, name, setName string) []models.CatalogCard {
	query := fmt.Sprintf("name:%q", name)
	if setName != "" {
		query += fmt.Sprintf(" set.name:%q", setName)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", fmt.Sprint(searchPageSize))

	var resp pokemonListResponse[pokemonCard]
	if err := s.get(ctx, "search", "/cards?"+params.Encode(), &resp); err != nil {
		return []models.CatalogCard{}
	}

	cards := make([]models.CatalogCard, len(resp.Data))
	for i, pc := range resp.Data {
		cards[i] = normalizeCard(pc)
	}
	return cards
}

// GetCard returns the catalog card with the given id, or nil when the
// catalog has no such card or could not be reached.
func (s *PokemonTCGService) GetCard(ctx context.Context, id string) *models.CatalogCard {
	if strings.TrimSpace(id) == "" {
		return nil
	}

	var resp struct {
		Data *pokemonCard `json:"data"`
	}
	if err := s.get(ctx, "get_card", "/cards/"+url.PathEscape(id), &resp); err != nil {
		return nil
	}
	if resp.Data == nil || resp.Data.ID == "" {
		log.Warn().Str("op", "get_card").Str("card_id", id).Msg("Catalog returned no card data")
		return nil
	}

	card := normalizeCard(*resp.Data)
	return &card
}

func (s *PokemonTCGService) GetSets(ctx context.Context) []models.CatalogSet {
	var resp pokemonListResponse[pokemonSet]
	if err := s.get(ctx, "sets", "/sets", &resp); err != nil {
		return []models.CatalogSet{}
	}

	sets := make([]models.CatalogSet, len(resp.Data))
	for i, ps := range resp.Data {
		sets[i] = models.CatalogSet{
			ID:          ps.ID,
			Name:        ps.Name,
			Series:      ps.Series,
			ReleaseDate: ps.ReleaseDate,
			Total:       ps.Total,
		}
	}
	return sets
}

// get fetches path and decodes the JSON body into out. Every failure is
// logged and counted here so callers only need to pick an empty result.
func (s *PokemonTCGService) get(ctx context.Context, op, path string, out any) error {
	start := time.Now()
	err := s.fetch(ctx, path, out)
	metrics.CatalogRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.CatalogRequestsTotal.WithLabelValues(op, "success").Inc()
	case errors.Is(err, errCatalogNotFound):
		metrics.CatalogRequestsTotal.WithLabelValues(op, "not_found").Inc()
		log.Debug().Str("op", op).Str("path", path).Msg("Catalog card not found")
	default:
		metrics.CatalogRequestsTotal.WithLabelValues(op, "failed").Inc()
		log.Error().Err(err).Str("op", op).Str("path", path).Msg("Card catalog request failed")
	}
	return err
}

func (s *PokemonTCGService) fetch(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", models.ErrCatalogUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errCatalogNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: pokemon tcg API returned status %d", models.ErrCatalogUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode pokemon tcg response: %w", err)
	}
	return nil
}

func normalizeCard(pc pokemonCard) models.CatalogCard {
	return models.CatalogCard{
		Name:        pc.Name,
		CardNumber:  pc.Number,
		SetName:     pc.Set.Name,
		Rarity:      pc.Rarity,
		ImageURL:    pc.Images.Large,
		TCGID:       pc.ID,
		MarketPrice: selectMarketPrice(pc.TCGPlayer),
		ReleaseDate: pc.Set.ReleaseDate,
		Series:      pc.Set.Series,
	}
}

// selectMarketPrice returns the market price of the first finish type in
// finishPriority that has one, or nil.
func selectMarketPrice(p *pokemonTCGPrice) *float64 {
	if p == nil || len(p.Prices) == 0 {
		return nil
	}
	for _, finish := range finishPriority {
		if set, ok := p.Prices[finish]; ok && set.Market != nil {
			market := *set.Market
			return &market
		}
	}
	return nil
}
