package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/tgtpos/receipt-service/internal/application/service"
	"github.com/tgtpos/receipt-service/internal/presentation/http/dto/request"
	"github.com/tgtpos/receipt-service/internal/presentation/http/dto/response"
	"github.com/tgtpos/receipt-service/internal/validation"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	validate       *validatorv10.Validate
	baseURL        string
}

// NewReceiptHandler creates a new receipt handler. baseURL may be empty, in
// which case URLs are rooted at the serving host of each request.
func NewReceiptHandler(receiptService *service.ReceiptService, validate *validatorv10.Validate, baseURL string) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		validate:       validate,
		baseURL:        baseURL,
	}
}

// Generate handles POST /api/generate-receipt
func (h *ReceiptHandler) Generate(c *gin.Context) {
	var req request.GenerateReceiptRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.receiptService.Generate(c.Request.Context(), req.ToEntity(), h.requestBaseURL(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.GenerateReceiptResponse{
		Success:     true,
		ReceiptID:   result.ReceiptID,
		QRCode:      result.QRCode,
		DownloadURL: result.DownloadURL,
		ShortURL:    result.ShortURL,
	})
}

// Resolve handles GET /s/:shortCode
func (h *ReceiptHandler) Resolve(c *gin.Context) {
	receiptID, err := h.receiptService.ResolveShortCode(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/download/"+receiptID)
}

// Download handles GET /download/:receiptId
func (h *ReceiptHandler) Download(c *gin.Context) {
	receiptID := c.Param("receiptId")

	doc, err := h.receiptService.RenderPDF(c.Request.Context(), receiptID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt-`+receiptID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Fetch handles GET /api/receipt/:receiptId
func (h *ReceiptHandler) Fetch(c *gin.Context) {
	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), c.Param("receiptId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// QRImage handles GET /api/qr/:receiptId/image
func (h *ReceiptHandler) QRImage(c *gin.Context) {
	png, err := h.receiptService.QRImagePNG(c.Request.Context(), c.Param("receiptId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// Analytics handles GET /api/analytics
func (h *ReceiptHandler) Analytics(c *gin.Context) {
	result, err := h.receiptService.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	stats := make([]response.ShortLinkStats, len(result.Links))
	for i, link := range result.Links {
		stats[i] = response.ShortLinkStats{
			ReceiptID:   link.ReceiptID,
			GeneratedAt: link.CreatedAt.Format(time.RFC3339),
			ScanCount:   link.ScanCount,
		}
	}

	c.JSON(http.StatusOK, response.AnalyticsResponse{
		TotalReceipts: result.TotalReceipts,
		TotalScans:    result.TotalScans,
		Receipts:      stats,
	})
}

// requestBaseURL roots generated URLs at the configured base URL, falling
// back to the scheme and host the request arrived on.
func (h *ReceiptHandler) requestBaseURL(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}

	scheme := "http"
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
