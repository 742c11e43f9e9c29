package request

import (
	"time"

	"github.com/tgtpos/receipt-service/internal/domain/entity"
	"github.com/tgtpos/receipt-service/internal/domain/enum"
)

// ReceiptItemRequest is a single submitted line item. Beyond presence of the
// items list itself, item fields are accepted as sent; the client is trusted
// for numeric correctness.
type ReceiptItemRequest struct {
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Price float64 `json:"price"`
}

// GenerateReceiptRequest is the payload for POST /api/generate-receipt.
type GenerateReceiptRequest struct {
	PosID           string               `json:"pos_id" validate:"required"`
	StoreID         string               `json:"store_id"`
	Items           []ReceiptItemRequest `json:"items" validate:"required,min=1"`
	Discount        float64              `json:"discount"`
	Tax             float64              `json:"tax"`
	PaymentMode     string               `json:"payment_mode"`
	CustomerContact string               `json:"customer_contact"`
	Timestamp       time.Time            `json:"timestamp"`
	TotalAmount     float64              `json:"total_amount"`
}

// ToEntity converts the submission into a receipt record. Identifier and
// generation timestamp are assigned by the service, not taken from here.
func (r *GenerateReceiptRequest) ToEntity() *entity.Receipt {
	items := make([]entity.ReceiptItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = entity.ReceiptItem{
			SKU:   item.SKU,
			Name:  item.Name,
			Qty:   item.Qty,
			Price: item.Price,
		}
	}
	return &entity.Receipt{
		PosID:           r.PosID,
		StoreID:         r.StoreID,
		Items:           items,
		Discount:        r.Discount,
		Tax:             r.Tax,
		PaymentMode:     enum.PaymentMode(r.PaymentMode),
		CustomerContact: r.CustomerContact,
		Timestamp:       r.Timestamp,
		TotalAmount:     r.TotalAmount,
	}
}
