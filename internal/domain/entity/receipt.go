package entity

import (
	"time"

	"github.com/tgtpos/receipt-service/internal/domain/enum"
)

// ReceiptItem represents a single line item on a receipt.
// The item order is display-significant and preserved as submitted.
type ReceiptItem struct {
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Price float64 `json:"price"`
}

// Receipt is the stored representation of a point-of-sale transaction.
// ReceiptID is issuer-assigned and immutable once stored; TotalAmount is the
// client-computed total and is kept verbatim.
type Receipt struct {
	ReceiptID       string           `json:"receipt_id"`
	PosID           string           `json:"pos_id"`
	StoreID         string           `json:"store_id"`
	Items           []ReceiptItem    `json:"items"`
	Discount        float64          `json:"discount"`
	Tax             float64          `json:"tax"`
	PaymentMode     enum.PaymentMode `json:"payment_mode"`
	CustomerContact string           `json:"customer_contact,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
	GeneratedAt     time.Time        `json:"generated_at"`
	TotalAmount     float64          `json:"total_amount"`
	ShortCode       string           `json:"short_code,omitempty"`
	ShortURL        string           `json:"short_url,omitempty"`
}

// ShortLink maps a short code to a receipt. Entries are created at
// generation time and never mutated apart from the scan counter.
type ShortLink struct {
	Code      string    `json:"code"`
	ReceiptID string    `json:"receipt_id"`
	CreatedAt time.Time `json:"created_at"`
	ScanCount int64     `json:"scan_count"`
}
