package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/tgtpos/receipt-service/internal/domain/entity"
)

// Fixed column positions for the items table, in points. Name gets the
// widest column so long product names do not overlap the qty column.
const (
	colSKUX   = 50
	colNameX  = 130
	colQtyX   = 280
	colPriceX = 330
	colTotalX = 410
	colSKUW   = 80
	colNameW  = 150
	colQtyW   = 50
	colPriceW = 80
	colTotalW = 90

	pageMargin   = 50
	lineHeight   = 16
	bottomLimit  = 792 // A4 height (842pt) minus the bottom margin
	summaryX     = 330
	summaryWidth = 215
)

const timeLayout = "02 Jan 2006 15:04:05"

// Config controls static parts of the rendered document.
type Config struct {
	Title          string
	CurrencyPrefix string
	FooterLines    []string
}

// DefaultConfig returns the layout used for digital receipts.
func DefaultConfig() Config {
	return Config{
		Title:          "DIGITAL RECEIPT",
		CurrencyPrefix: "Rs ",
		FooterLines: []string{
			"Thank you for your purchase!",
			"This is a digitally generated receipt.",
		},
	}
}

// Renderer lays out receipts into printable PDF documents. Render is a pure
// function of the record: identical input produces identical bytes.
type Renderer struct {
	cfg Config
}

// NewRenderer creates a renderer with the given config. Zero-value fields
// fall back to defaults.
func NewRenderer(cfg Config) *Renderer {
	def := DefaultConfig()
	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	if cfg.CurrencyPrefix == "" {
		cfg.CurrencyPrefix = def.CurrencyPrefix
	}
	if len(cfg.FooterLines) == 0 {
		cfg.FooterLines = def.FooterLines
	}
	return &Renderer{cfg: cfg}
}

// Render produces the PDF document for a receipt. Line totals and the
// subtotal are computed from the items here; the stored total amount is
// rendered verbatim and never reconciled against them.
func (r *Renderer) Render(receipt *entity.Receipt) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, pageMargin)
	// Pin document metadata to the record so output is reproducible.
	doc.SetCreationDate(receipt.GeneratedAt.UTC())
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")

	// Title
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 24, r.cfg.Title, "", 1, "C", false, 0, "")
	doc.Ln(10)

	// Store and receipt identity block
	doc.SetFont("Helvetica", "", 12)
	identity := []string{
		"Store ID: " + receipt.StoreID,
		"POS ID: " + receipt.PosID,
		"Receipt ID: " + receipt.ReceiptID,
		"Date: " + receipt.Timestamp.Format(timeLayout),
		"Generated: " + receipt.GeneratedAt.Format(timeLayout),
	}
	for _, line := range identity {
		doc.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}
	doc.Ln(10)

	// Items section
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, lineHeight, "ITEMS:", "", 1, "L", false, 0, "")
	doc.Ln(4)
	r.itemsHeader(doc)

	subtotal := Subtotal(receipt.Items)
	doc.SetFont("Helvetica", "", 10)
	for _, item := range receipt.Items {
		if doc.GetY()+lineHeight > bottomLimit {
			doc.AddPage()
			r.itemsHeader(doc)
			doc.SetFont("Helvetica", "", 10)
		}

		lineTotal := LineTotal(item)

		y := doc.GetY()
		doc.SetXY(colSKUX, y)
		doc.CellFormat(colSKUW, lineHeight, tr(item.SKU), "", 0, "L", false, 0, "")
		doc.SetXY(colNameX, y)
		doc.CellFormat(colNameW, lineHeight, tr(item.Name), "", 0, "L", false, 0, "")
		doc.SetXY(colQtyX, y)
		doc.CellFormat(colQtyW, lineHeight, formatQty(item.Qty), "", 0, "L", false, 0, "")
		doc.SetXY(colPriceX, y)
		doc.CellFormat(colPriceW, lineHeight, r.money(decimal.NewFromFloat(item.Price)), "", 0, "L", false, 0, "")
		doc.SetXY(colTotalX, y)
		doc.CellFormat(colTotalW, lineHeight, r.money(lineTotal), "", 1, "L", false, 0, "")
	}

	// Summary block
	doc.Ln(10)
	y := doc.GetY()
	doc.Line(summaryX, y, summaryX+summaryWidth, y)
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 12)
	r.summaryLine(doc, "Subtotal: "+r.money(subtotal))
	r.summaryLine(doc, "Discount: -"+r.money(decimal.NewFromFloat(receipt.Discount)))
	r.summaryLine(doc, "Tax: "+r.money(decimal.NewFromFloat(receipt.Tax)))
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 14)
	r.summaryLine(doc, "TOTAL: "+r.money(decimal.NewFromFloat(receipt.TotalAmount)))

	doc.Ln(10)
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, lineHeight, tr("Payment Mode: "+receipt.PaymentMode.String()), "", 1, "L", false, 0, "")
	if receipt.CustomerContact != "" {
		doc.CellFormat(0, lineHeight, tr("Customer Contact: "+receipt.CustomerContact), "", 1, "L", false, 0, "")
	}

	// Footer
	doc.Ln(24)
	doc.SetFont("Helvetica", "", 10)
	for _, line := range r.cfg.FooterLines {
		doc.CellFormat(0, 14, tr(line), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: failed to render receipt %s: %w", receipt.ReceiptID, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) itemsHeader(doc *gofpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 10)
	y := doc.GetY()
	doc.SetXY(colSKUX, y)
	doc.CellFormat(colSKUW, lineHeight, "SKU", "", 0, "L", false, 0, "")
	doc.SetXY(colNameX, y)
	doc.CellFormat(colNameW, lineHeight, "Name", "", 0, "L", false, 0, "")
	doc.SetXY(colQtyX, y)
	doc.CellFormat(colQtyW, lineHeight, "Qty", "", 0, "L", false, 0, "")
	doc.SetXY(colPriceX, y)
	doc.CellFormat(colPriceW, lineHeight, "Price", "", 0, "L", false, 0, "")
	doc.SetXY(colTotalX, y)
	doc.CellFormat(colTotalW, lineHeight, "Total", "", 1, "L", false, 0, "")

	y = doc.GetY()
	doc.Line(pageMargin, y, colTotalX+colTotalW, y)
	doc.Ln(4)
}

func (r *Renderer) summaryLine(doc *gofpdf.Fpdf, text string) {
	doc.SetX(summaryX)
	doc.CellFormat(summaryWidth, lineHeight, text, "", 1, "L", false, 0, "")
}

func (r *Renderer) money(v decimal.Decimal) string {
	return r.cfg.CurrencyPrefix + v.String()
}

func formatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}

// LineTotal computes qty x price for an item using exact decimal arithmetic.
// Line totals are always derived here, never trusted from the submission.
func LineTotal(item entity.ReceiptItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Qty).Mul(decimal.NewFromFloat(item.Price))
}

// Subtotal sums the line totals across all items.
func Subtotal(items []entity.ReceiptItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineTotal(item))
	}
	return sum
}
