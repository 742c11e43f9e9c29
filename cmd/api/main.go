package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/tgtpos/receipt-service/internal/application/service"
	"github.com/tgtpos/receipt-service/internal/config"
	"github.com/tgtpos/receipt-service/internal/infrastructure/repository"
	"github.com/tgtpos/receipt-service/internal/presentation/http/handler"
	"github.com/tgtpos/receipt-service/internal/presentation/http/routes"
	"github.com/tgtpos/receipt-service/internal/validation"
	"github.com/tgtpos/receipt-service/pkg/pdf"
	"github.com/tgtpos/receipt-service/pkg/qrcode"
	"github.com/tgtpos/receipt-service/pkg/shortcode"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the in-memory receipt store. State lives for the process
	// lifetime only; every restart begins empty.
	receiptRepo := repository.NewMemoryReceiptRepository()

	// Initialize the artifact pipeline
	codes := shortcode.NewGenerator(cfg.ShortCode.Length)
	encoder := qrcode.NewEncoder(qrcode.Options{
		Width:      cfg.QR.Width,
		Margin:     cfg.QR.Margin,
		Foreground: cfg.QR.Foreground,
		Background: cfg.QR.Background,
	})
	renderer := pdf.NewRenderer(pdf.DefaultConfig())

	// Initialize services
	receiptService := service.NewReceiptService(
		receiptRepo,
		codes,
		encoder,
		renderer,
		cfg.ShortCode.MaxAttempts,
		cfg.Render.Timeout,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Receipt: handler.NewReceiptHandler(receiptService, validation.New(), cfg.Server.BaseURL),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "5000"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
