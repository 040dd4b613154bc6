package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/codyseavey/card-inventory/backend/internal/metrics"
	"github.com/codyseavey/card-inventory/backend/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CardCreator persists a single card.
type CardCreator interface {
	CreateCard(ctx context.Context, req models.CreateCardRequest) (*models.Card, error)
}

type BulkImportResult struct {
	CreatedCount int           `json:"created_count"`
	Errors       []string      `json:"errors"`
	Cards        []models.Card `json:"cards"`
}

// BulkImporter creates cards from CSV uploads, one card per data row.
type BulkImporter struct {
	cards CardCreator
}

func NewBulkImporter(cards CardCreator) *BulkImporter {
	return &BulkImporter{cards: cards}
}

// Import reads a CSV with a header row and creates a card for every data
// row. Rows are numbered as in a spreadsheet, the header being row 1. A
// failing row is reported in the result and does not stop the import.
// models.ErrBadUploadFormat is returned, before any card is created, when
// filename does not end in .csv or the content is not UTF-8 CSV.
func (b *BulkImporter) Import(ctx context.Context, filename string, r io.Reader) (*BulkImportResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, fmt.Errorf("%w: %q", models.ErrBadUploadFormat, filename)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: content is not UTF-8", models.ErrBadUploadFormat)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable header: %v", models.ErrBadUploadFormat, err)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}

	result := &BulkImportResult{Errors: []string{}, Cards: []models.Card{}}
	log.Info().Str("file", filename).Int("bytes", len(data)).Msg("Bulk import started")

	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			b.fail(result, row, err)
			continue
		}

		card, err := b.cards.CreateCard(ctx, rowRequest(columns, record))
		if err != nil {
			b.fail(result, row, err)
			continue
		}
		result.Cards = append(result.Cards, *card)
		result.CreatedCount++
		metrics.BulkImportRowsTotal.WithLabelValues("created").Inc()
	}

	log.Info().
		Str("file", filename).
		Int("created", result.CreatedCount).
		Int("failed", len(result.Errors)).
		Msg("Bulk import finished")
	return result, nil
}

func (b *BulkImporter) fail(result *BulkImportResult, row int, err error) {
	result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row, err))
	metrics.BulkImportRowsTotal.WithLabelValues("failed").Inc()
	log.Debug().Err(err).Int("row", row).Msg("Bulk import row rejected")
}

// rowRequest maps a record onto a card request by header name. Empty and
// missing cells are treated alike.
func rowRequest(columns map[string]int, record []string) models.CreateCardRequest {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	optional := func(name string) *string {
		if v := cell(name); v != "" {
			return &v
		}
		return nil
	}

	return models.CreateCardRequest{
		Name:        cell("name"),
		CardNumber:  optional("card_number"),
		SetName:     cell("set_name"),
		Rarity:      optional("rarity"),
		Condition:   models.Condition(cell("condition")),
		Language:    cell("language"),
		ImageURL:    optional("image_url"),
		Description: optional("description"),
	}
}
