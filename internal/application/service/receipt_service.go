package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tgtpos/receipt-service/internal/domain/entity"
	"github.com/tgtpos/receipt-service/internal/domain/repository"
	"github.com/tgtpos/receipt-service/pkg/apperror"
	"github.com/tgtpos/receipt-service/pkg/pdf"
	"github.com/tgtpos/receipt-service/pkg/qrcode"
	"github.com/tgtpos/receipt-service/pkg/shortcode"
)

// DefaultCodeAttempts bounds the short-code collision retry loop.
const DefaultCodeAttempts = 5

// DefaultRenderTimeout bounds QR encoding and PDF rendering.
const DefaultRenderTimeout = 10 * time.Second

// ReceiptService orchestrates the receipt-to-artifact pipeline: identifier
// issuance, storage, short-link mapping, QR encoding and PDF rendering.
type ReceiptService struct {
	receiptRepo  repository.ReceiptRepository
	codes        *shortcode.Generator
	encoder      *qrcode.Encoder
	renderer     *pdf.Renderer
	codeAttempts int
	timeout      time.Duration
}

// NewReceiptService creates a new receipt service. Non-positive attempt and
// timeout values fall back to the defaults.
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	codes *shortcode.Generator,
	encoder *qrcode.Encoder,
	renderer *pdf.Renderer,
	codeAttempts int,
	timeout time.Duration,
) *ReceiptService {
	if codeAttempts <= 0 {
		codeAttempts = DefaultCodeAttempts
	}
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	return &ReceiptService{
		receiptRepo:  receiptRepo,
		codes:        codes,
		encoder:      encoder,
		renderer:     renderer,
		codeAttempts: codeAttempts,
		timeout:      timeout,
	}
}

// GenerateResult is the outcome of a successful generate pipeline run.
type GenerateResult struct {
	ReceiptID   string
	QRCode      string
	DownloadURL string
	ShortURL    string
}

// Generate runs the full pipeline for a validated submission: mint the
// receipt ID, store the record, map a short code (bounded collision retry)
// and encode the QR image for the short URL. The record is saved before the
// short code is mapped, so a scan racing the pipeline never resolves to a
// receipt that does not exist yet. If any later stage fails, the record and
// its short link are removed so no dangling mapping survives.
func (s *ReceiptService) Generate(ctx context.Context, receipt *entity.Receipt, baseURL string) (*GenerateResult, error) {
	receipt.ReceiptID = uuid.NewString()
	receipt.GeneratedAt = time.Now().UTC()
	if receipt.Timestamp.IsZero() {
		receipt.Timestamp = receipt.GeneratedAt
	}
	// Payment mode is client-enforced; unknown values are stored as-is but
	// worth a trace in the log.
	if receipt.PaymentMode != "" && !receipt.PaymentMode.IsValid() {
		log.Printf("receipt %s: unrecognized payment mode %q", receipt.ReceiptID, receipt.PaymentMode)
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		log.Printf("receipt %s: store write failed: %v", receipt.ReceiptID, err)
		return nil, apperror.NewGenerationError("Failed to generate receipt")
	}

	code, err := s.mapShortCode(ctx, receipt.ReceiptID)
	if err != nil {
		s.rollback(ctx, receipt.ReceiptID)
		log.Printf("receipt %s: short code mapping failed: %v", receipt.ReceiptID, err)
		return nil, apperror.NewGenerationError("Failed to generate receipt")
	}
	receipt.ShortCode = code
	receipt.ShortURL = baseURL + "/s/" + code

	// Persist the short link fields so later reads see the same URL the
	// caller was handed.
	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		s.rollback(ctx, receipt.ReceiptID)
		log.Printf("receipt %s: store write failed: %v", receipt.ReceiptID, err)
		return nil, apperror.NewGenerationError("Failed to generate receipt")
	}

	dataURI, err := s.encodeDataURI(ctx, receipt.ShortURL)
	if err != nil {
		s.rollback(ctx, receipt.ReceiptID)
		log.Printf("receipt %s: QR encoding failed: %v", receipt.ReceiptID, err)
		return nil, apperror.NewGenerationError("Failed to generate receipt")
	}

	return &GenerateResult{
		ReceiptID:   receipt.ReceiptID,
		QRCode:      dataURI,
		DownloadURL: baseURL + "/download/" + receipt.ReceiptID,
		ShortURL:    receipt.ShortURL,
	}, nil
}

// mapShortCode claims a fresh short code for the receipt, retrying on
// collisions up to the configured attempt bound.
func (s *ReceiptService) mapShortCode(ctx context.Context, receiptID string) (string, error) {
	for attempt := 0; attempt < s.codeAttempts; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return "", err
		}
		err = s.receiptRepo.MapShortCode(ctx, code, receiptID)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, apperror.ErrConflict) {
			return "", err
		}
	}
	return "", fmt.Errorf("no free short code after %d attempts", s.codeAttempts)
}

// GetReceipt returns the stored record for a receipt ID.
func (s *ReceiptService) GetReceipt(ctx context.Context, receiptID string) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ResolveShortCode returns the receipt ID behind a short code and records
// the scan.
func (s *ReceiptService) ResolveShortCode(ctx context.Context, code string) (string, error) {
	receiptID, err := s.receiptRepo.ResolveShortCode(ctx, code)
	if err != nil {
		return "", err
	}
	if receiptID == "" {
		return "", apperror.NewNotFoundError("Short URL")
	}
	if err := s.receiptRepo.RecordScan(ctx, code); err != nil {
		// The redirect still stands; only the counter is stale.
		log.Printf("short code %s: scan not recorded: %v", code, err)
	}
	return receiptID, nil
}

// RenderPDF lays out the stored record into the downloadable document.
func (s *ReceiptService) RenderPDF(ctx context.Context, receiptID string) ([]byte, error) {
	receipt, err := s.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	doc, err := s.renderWithTimeout(ctx, receipt)
	if err != nil {
		log.Printf("receipt %s: PDF rendering failed: %v", receiptID, err)
		return nil, apperror.NewGenerationError("Failed to generate PDF")
	}
	return doc, nil
}

// QRImagePNG re-encodes the receipt's stored short URL as a raw PNG. The
// encoding is deterministic and the URL is the one captured at generate
// time, so the image matches the data URI the generate call returned even
// if the service is later reached through a different host.
func (s *ReceiptService) QRImagePNG(ctx context.Context, receiptID string) ([]byte, error) {
	receipt, err := s.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	png, err := s.encodePNG(ctx, receipt.ShortURL)
	if err != nil {
		log.Printf("receipt %s: QR encoding failed: %v", receiptID, err)
		return nil, apperror.NewGenerationError("Failed to generate QR image")
	}
	return png, nil
}

// AnalyticsResult summarizes generated receipts and short-link scans.
type AnalyticsResult struct {
	TotalReceipts int64
	TotalScans    int64
	Links         []entity.ShortLink
}

// Analytics reports generation and scan counts across all short links.
func (s *ReceiptService) Analytics(ctx context.Context) (*AnalyticsResult, error) {
	total, err := s.receiptRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.receiptRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	result := &AnalyticsResult{TotalReceipts: total, Links: links}
	for _, link := range links {
		result.TotalScans += link.ScanCount
	}
	return result, nil
}

func (s *ReceiptService) rollback(ctx context.Context, receiptID string) {
	if err := s.receiptRepo.Delete(ctx, receiptID); err != nil {
		log.Printf("receipt %s: rollback failed: %v", receiptID, err)
	}
}

func (s *ReceiptService) encodeDataURI(ctx context.Context, url string) (string, error) {
	return runBounded(ctx, s.timeout, func() (string, error) {
		return s.encoder.EncodeDataURI(url)
	})
}

func (s *ReceiptService) encodePNG(ctx context.Context, url string) ([]byte, error) {
	return runBounded(ctx, s.timeout, func() ([]byte, error) {
		return s.encoder.EncodePNG(url)
	})
}

func (s *ReceiptService) renderWithTimeout(ctx context.Context, receipt *entity.Receipt) ([]byte, error) {
	return runBounded(ctx, s.timeout, func() ([]byte, error) {
		return s.renderer.Render(receipt)
	})
}

// runBounded executes a CPU-bound transformation under a deadline so a
// malformed input cannot hang the request.
func runBounded[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := fn()
		done <- outcome{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case out := <-done:
		return out.value, out.err
	}
}
