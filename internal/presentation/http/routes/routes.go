package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tgtpos/receipt-service/internal/config"
	"github.com/tgtpos/receipt-service/internal/presentation/http/dto/response"
	"github.com/tgtpos/receipt-service/internal/presentation/http/handler"
	"github.com/tgtpos/receipt-service/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Receipt *handler.ReceiptHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, response.HealthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Short links and downloads are scanned from QR codes, so they live at
	// the root rather than under /api.
	router.GET("/s/:shortCode", h.Receipt.Resolve)
	router.GET("/download/:receiptId", h.Receipt.Download)

	api := router.Group("/api")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
			BurstSize:         cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		api.Use(rateLimiter.Middleware())

		api.POST("/generate-receipt", h.Receipt.Generate)
		api.GET("/receipt/:receiptId", h.Receipt.Fetch)
		api.GET("/qr/:receiptId/image", h.Receipt.QRImage)
		api.GET("/analytics", h.Receipt.Analytics)
	}

	return router
}
