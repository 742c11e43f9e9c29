package response

import (
	"github.com/gin-gonic/gin"

	"github.com/tgtpos/receipt-service/pkg/apperror"
)

// The wire shapes here are flat rather than enveloped: they are the public
// contract consumed by the POS form client and must not change.

// GenerateReceiptResponse is the success body for POST /api/generate-receipt.
type GenerateReceiptResponse struct {
	Success     bool   `json:"success"`
	ReceiptID   string `json:"receipt_id"`
	QRCode      string `json:"qr_code"`
	DownloadURL string `json:"download_url"`
	ShortURL    string `json:"short_url"`
}

// HealthResponse is the body for GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ShortLinkStats is a per-receipt entry in the analytics body.
type ShortLinkStats struct {
	ReceiptID   string `json:"receipt_id"`
	GeneratedAt string `json:"generated_at"`
	ScanCount   int64  `json:"scan_count"`
}

// AnalyticsResponse is the body for GET /api/analytics.
type AnalyticsResponse struct {
	TotalReceipts int64            `json:"total_receipts"`
	TotalScans    int64            `json:"total_scans"`
	Receipts      []ShortLinkStats `json:"receipts"`
}

// Error maps an application error onto the flat {error} wire shape.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
