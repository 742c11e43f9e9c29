package validation

import (
	"strings"
	"testing"

	"github.com/tgtpos/receipt-service/internal/presentation/http/dto/request"
)

func TestValidSubmission(t *testing.T) {
	v := New()

	req := request.GenerateReceiptRequest{
		PosID: "POS1",
		Items: []request.ReceiptItemRequest{
			{SKU: "A1", Name: "Pen", Qty: 2, Price: 10},
		},
		Tax:         1,
		PaymentMode: "Cash",
		TotalAmount: 21,
	}
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestMissingPosID(t *testing.T) {
	v := New()

	req := request.GenerateReceiptRequest{
		Items: []request.ReceiptItemRequest{{SKU: "A1", Name: "Pen", Qty: 1, Price: 5}},
	}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for missing pos_id, got nil")
	}
}

func TestEmptyItems(t *testing.T) {
	v := New()

	req := request.GenerateReceiptRequest{PosID: "POS1"}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for missing items, got nil")
	}

	req.Items = []request.ReceiptItemRequest{}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for empty items, got nil")
	}
}

func TestDescribeUsesWireNames(t *testing.T) {
	v := New()

	err := v.Struct(request.GenerateReceiptRequest{})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	msg := describe(err)
	if msg == "Invalid receipt data" {
		t.Fatalf("expected field detail in message, got %q", msg)
	}
	for _, want := range []string{"pos_id", "items"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in message %q", want, msg)
		}
	}
}
