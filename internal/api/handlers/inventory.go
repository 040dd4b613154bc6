package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

type InventoryStore interface {
	ListInventory(ctx context.Context, offset, limit int) ([]models.Inventory, error)
	GetInventoryByCard(ctx context.Context, cardID uint) (*models.Inventory, error)
	CreateInventory(ctx context.Context, req models.CreateInventoryRequest) (*models.Inventory, error)
	UpdateInventory(ctx context.Context, id uint, patch models.InventoryPatch) (*models.Inventory, error)
	InventoryStats(ctx context.Context) (*models.InventoryStats, error)
}

type InventoryHandler struct {
	store InventoryStore
}

func NewInventoryHandler(store InventoryStore) *InventoryHandler {
	return &InventoryHandler{store: store}
}

func (h *InventoryHandler) ListInventory(c *gin.Context) {
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	items, err := h.store.ListInventory(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetCardInventory returns the holding for the card in the path.
func (h *InventoryHandler) GetCardInventory(c *gin.Context) {
	cardID, ok := parseID(c, "id")
	if !ok {
		return
	}

	item, err := h.store.GetInventoryByCard(c.Request.Context(), cardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	var req models.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	item, err := h.store.CreateInventory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch models.InventoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}

	item, err := h.store.UpdateInventory(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) GetStats(c *gin.Context) {
	stats, err := h.store.InventoryStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
