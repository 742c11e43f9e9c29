package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/tgtpos/receipt-service/internal/domain/entity"
)

func sampleReceipt() *entity.Receipt {
	ts := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	return &entity.Receipt{
		ReceiptID: "6f1c9f0e-8f1a-4a6e-9f3d-0c1b2a3d4e5f",
		PosID:     "POS1",
		StoreID:   "STORE-7",
		Items: []entity.ReceiptItem{
			{SKU: "A1", Name: "Pen", Qty: 2, Price: 10},
			{SKU: "B2", Name: "Notebook", Qty: 1, Price: 45.50},
		},
		Discount:        5,
		Tax:             3.5,
		PaymentMode:     "Cash",
		CustomerContact: "98765 43210",
		Timestamp:       ts,
		GeneratedAt:     ts.Add(2 * time.Second),
		TotalAmount:     64,
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	r := NewRenderer(DefaultConfig())

	doc, err := r.Render(sampleReceipt())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatal("output does not start with a PDF header")
	}
	if len(doc) < 500 {
		t.Fatalf("document suspiciously small: %d bytes", len(doc))
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer(DefaultConfig())

	first, err := r.Render(sampleReceipt())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Render(sampleReceipt())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected identical bytes for identical input")
	}
}

func TestRender_ManyItemsPaginates(t *testing.T) {
	r := NewRenderer(DefaultConfig())

	receipt := sampleReceipt()
	receipt.Items = nil
	for i := 0; i < 120; i++ {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			SKU: "SKU", Name: "Item", Qty: 1, Price: 1,
		})
	}

	doc, err := r.Render(receipt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatal("output does not start with a PDF header")
	}
}

func TestLineTotal(t *testing.T) {
	got := LineTotal(entity.ReceiptItem{SKU: "A1", Name: "Pen", Qty: 2, Price: 10})
	if got.String() != "20" {
		t.Fatalf("expected line total 20, got %s", got)
	}
}

func TestSubtotal_IndependentOfClientTotal(t *testing.T) {
	items := []entity.ReceiptItem{
		{SKU: "A1", Name: "Pen", Qty: 2, Price: 10},
		{SKU: "B2", Name: "Notebook", Qty: 3, Price: 0.1},
	}

	// 2*10 + 3*0.1 must come out exact, not 20.300000000000004.
	if got := Subtotal(items).String(); got != "20.3" {
		t.Fatalf("expected subtotal 20.3, got %s", got)
	}

	if got := Subtotal(nil).String(); got != "0" {
		t.Fatalf("expected empty subtotal 0, got %s", got)
	}
}
