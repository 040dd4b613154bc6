package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/card-inventory/backend/internal/api/handlers"
	"github.com/codyseavey/card-inventory/backend/internal/repository"
)

const apiVersion = "1.0.0"

type RouterOptions struct {
	Store          *repository.Store
	Catalog        handlers.CatalogService
	Importer       handlers.Importer
	AllowedOrigins []string
	MaxUploadBytes int64
}

func SetupRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Logger(), Metrics(), Recovery())

	config := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		config.AllowOrigins = opts.AllowedOrigins
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	config.AllowCredentials = false
	router.Use(cors.New(config))

	cardHandler := handlers.NewCardHandler(opts.Store)
	inventoryHandler := handlers.NewInventoryHandler(opts.Store)
	priceHistoryHandler := handlers.NewPriceHistoryHandler(opts.Store)
	bulkHandler := handlers.NewBulkUploadHandler(opts.Importer, opts.MaxUploadBytes)
	catalogHandler := handlers.NewCatalogHandler(opts.Catalog)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Pokemon Card Inventory System API",
			"version": apiVersion,
			"status":  "running",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "pokemon-card-api"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		cards := api.Group("/cards")
		{
			cards.GET("", cardHandler.ListCards)
			cards.POST("", cardHandler.CreateCard)
			cards.POST("/bulk-upload", bulkHandler.Upload)

			// Static segments are matched before the :id routes below.
			inventory := cards.Group("/inventory")
			{
				inventory.GET("", inventoryHandler.ListInventory)
				inventory.POST("", inventoryHandler.CreateInventory)
				inventory.GET("/stats", inventoryHandler.GetStats)
				inventory.PUT("/:id", inventoryHandler.UpdateInventory)
			}

			cards.GET("/:id", cardHandler.GetCard)
			cards.PUT("/:id", cardHandler.UpdateCard)
			cards.DELETE("/:id", cardHandler.DeleteCard)
			cards.GET("/:id/details", cardHandler.GetCardDetails)
			cards.GET("/:id/inventory", inventoryHandler.GetCardInventory)
			cards.GET("/:id/price-history", priceHistoryHandler.ListPriceHistory)
			cards.POST("/:id/price-history", priceHistoryHandler.CreatePriceHistory)
		}

		catalog := api.Group("/pokemon-tcg")
		{
			catalog.GET("/search", catalogHandler.SearchCards)
			catalog.GET("/card/:id", catalogHandler.GetCard)
			catalog.GET("/sets", catalogHandler.GetSets)
		}
	}

	return router
}
