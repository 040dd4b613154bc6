package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/card-inventory/backend/internal/models"
	"github.com/codyseavey/card-inventory/backend/internal/repository"
)

type PriceHistoryStore interface {
	CreatePriceHistory(ctx context.Context, req models.CreatePriceHistoryRequest) (*models.PriceHistory, error)
	ListPriceHistory(ctx context.Context, cardID uint, limit int) ([]models.PriceHistory, error)
}

type PriceHistoryHandler struct {
	store PriceHistoryStore
}

func NewPriceHistoryHandler(store PriceHistoryStore) *PriceHistoryHandler {
	return &PriceHistoryHandler{store: store}
}

// ListPriceHistory returns the card's observations, most recent first.
func (h *PriceHistoryHandler) ListPriceHistory(c *gin.Context) {
	cardID, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", repository.DefaultPriceHistoryLimit, 1, maxPageLimit)
	if !ok {
		return
	}

	entries, err := h.store.ListPriceHistory(c.Request.Context(), cardID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreatePriceHistory records an observation for the card in the path. A
// card_id in the body is ignored.
func (h *PriceHistoryHandler) CreatePriceHistory(c *gin.Context) {
	cardID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.CreatePriceHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	req.CardID = cardID

	entry, err := h.store.CreatePriceHistory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
