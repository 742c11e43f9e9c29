package repository

import (
	"context"

	"github.com/tgtpos/receipt-service/internal/domain/entity"
)

// ReceiptRepository defines the interface for receipt storage operations.
// Implementations must make every single call atomic with respect to
// concurrent writers; no multi-call transactions are required.
type ReceiptRepository interface {
	// Save inserts or overwrites a receipt by its receipt ID.
	Save(ctx context.Context, receipt *entity.Receipt) error
	// GetByID returns the receipt for the given ID, or nil if unknown.
	GetByID(ctx context.Context, receiptID string) (*entity.Receipt, error)
	// Delete removes a receipt and any short link pointing at it.
	// Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, receiptID string) error
	// MapShortCode maps a short code to a receipt ID. Returns
	// apperror.ErrConflict if the code is already taken.
	MapShortCode(ctx context.Context, code, receiptID string) error
	// ResolveShortCode returns the receipt ID mapped to a short code,
	// or "" if the code is unknown.
	ResolveShortCode(ctx context.Context, code string) (string, error)
	// RecordScan increments the scan counter for a short code.
	RecordScan(ctx context.Context, code string) error
	// Stats returns all short links, newest first.
	Stats(ctx context.Context) ([]entity.ShortLink, error)
	// Count returns the number of stored receipts.
	Count(ctx context.Context) (int64, error)
}
