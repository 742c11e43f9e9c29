package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tgtpos/receipt-service/internal/domain/entity"
	"github.com/tgtpos/receipt-service/internal/domain/repository"
	"github.com/tgtpos/receipt-service/pkg/apperror"
)

// memoryReceiptRepository is a process-lifetime receipt store. State is
// rebuilt empty on every start; there is no eviction and no capacity bound.
type memoryReceiptRepository struct {
	mu         sync.RWMutex
	receipts   map[string]*entity.Receipt
	shortLinks map[string]*entity.ShortLink
}

// NewMemoryReceiptRepository creates an empty in-memory receipt repository.
func NewMemoryReceiptRepository() repository.ReceiptRepository {
	return &memoryReceiptRepository{
		receipts:   make(map[string]*entity.Receipt),
		shortLinks: make(map[string]*entity.ShortLink),
	}
}

func (r *memoryReceiptRepository) Save(_ context.Context, receipt *entity.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *receipt
	cp.Items = append([]entity.ReceiptItem(nil), receipt.Items...)
	r.receipts[receipt.ReceiptID] = &cp
	return nil
}

func (r *memoryReceiptRepository) GetByID(_ context.Context, receiptID string) (*entity.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	receipt, ok := r.receipts[receiptID]
	if !ok {
		return nil, nil
	}
	cp := *receipt
	cp.Items = append([]entity.ReceiptItem(nil), receipt.Items...)
	return &cp, nil
}

func (r *memoryReceiptRepository) Delete(_ context.Context, receiptID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.receipts, receiptID)
	for code, link := range r.shortLinks {
		if link.ReceiptID == receiptID {
			delete(r.shortLinks, code)
		}
	}
	return nil
}

func (r *memoryReceiptRepository) MapShortCode(_ context.Context, code, receiptID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.shortLinks[code]; taken {
		return apperror.ErrConflict
	}
	r.shortLinks[code] = &entity.ShortLink{
		Code:      code,
		ReceiptID: receiptID,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (r *memoryReceiptRepository) ResolveShortCode(_ context.Context, code string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.shortLinks[code]
	if !ok {
		return "", nil
	}
	return link.ReceiptID, nil
}

func (r *memoryReceiptRepository) RecordScan(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.shortLinks[code]
	if !ok {
		return apperror.NewNotFoundError("Short URL")
	}
	link.ScanCount++
	return nil
}

func (r *memoryReceiptRepository) Stats(_ context.Context) ([]entity.ShortLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	links := make([]entity.ShortLink, 0, len(r.shortLinks))
	for _, link := range r.shortLinks {
		links = append(links, *link)
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].Code < links[j].Code
		}
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
	return links, nil
}

func (r *memoryReceiptRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.receipts)), nil
}
