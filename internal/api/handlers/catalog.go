package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

// CatalogService looks cards up in the external catalog. It reports
// failures as empty results.
type CatalogService interface {
	SearchCards(ctx context.Context, name, setName string) []models.CatalogCard
	GetCard(ctx context.Context, id string) *models.CatalogCard
	GetSets(ctx context.Context) []models.CatalogSet
}

type CatalogHandler struct {
	catalog CatalogService
}

func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) SearchCards(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		invalidField(c, "name", "cannot be blank")
		return
	}

	cards := h.catalog.SearchCards(c.Request.Context(), name, strings.TrimSpace(c.Query("set_name")))
	c.JSON(http.StatusOK, cards)
}

func (h *CatalogHandler) GetCard(c *gin.Context) {
	card := h.catalog.GetCard(c.Request.Context(), c.Param("id"))
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *CatalogHandler) GetSets(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.GetSets(c.Request.Context()))
}
