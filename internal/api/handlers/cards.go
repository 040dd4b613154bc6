package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/card-inventory/backend/internal/metrics"
	"github.com/codyseavey/card-inventory/backend/internal/models"
	"github.com/codyseavey/card-inventory/backend/internal/repository"
)

type CardStore interface {
	ListCards(ctx context.Context, f repository.CardFilter) ([]models.Card, error)
	GetCard(ctx context.Context, id uint) (*models.Card, error)
	GetCardDetails(ctx context.Context, id uint) (*models.CardDetails, error)
	CreateCard(ctx context.Context, req models.CreateCardRequest) (*models.Card, error)
	UpdateCard(ctx context.Context, id uint, patch models.CardPatch) (*models.Card, error)
	DeleteCard(ctx context.Context, id uint) (bool, error)
}

type CardHandler struct {
	store CardStore
}

func NewCardHandler(store CardStore) *CardHandler {
	return &CardHandler{store: store}
}

func (h *CardHandler) ListCards(c *gin.Context) {
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	cards, err := h.store.ListCards(c.Request.Context(), repository.CardFilter{
		Offset: skip,
		Limit:  limit,
		Search: c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *CardHandler) GetCard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	card, err := h.store.GetCard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// GetCardDetails returns the card with its holdings and recent prices.
func (h *CardHandler) GetCardDetails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	details, err := h.store.GetCardDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *CardHandler) CreateCard(c *gin.Context) {
	var req models.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	card, err := h.store.CreateCard(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.CardsCreatedTotal.Inc()
	c.JSON(http.StatusOK, card)
}

// UpdateCard applies a partial update. Omitted fields are kept and null
// clears a nullable field.
func (h *CardHandler) UpdateCard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch models.CardPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}

	card, err := h.store.UpdateCard(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) DeleteCard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.store.DeleteCard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondError(c, &models.NotFoundError{Resource: "Card", ID: id})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}
