package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tgtpos/receipt-service/internal/application/service"
	"github.com/tgtpos/receipt-service/internal/config"
	infraRepo "github.com/tgtpos/receipt-service/internal/infrastructure/repository"
	"github.com/tgtpos/receipt-service/internal/presentation/http/handler"
	"github.com/tgtpos/receipt-service/internal/presentation/http/routes"
	"github.com/tgtpos/receipt-service/internal/validation"
	"github.com/tgtpos/receipt-service/pkg/pdf"
	"github.com/tgtpos/receipt-service/pkg/qrcode"
	"github.com/tgtpos/receipt-service/pkg/shortcode"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter() *gin.Engine {
	receiptRepo := infraRepo.NewMemoryReceiptRepository()
	receiptService := service.NewReceiptService(
		receiptRepo,
		shortcode.NewGenerator(6),
		qrcode.NewEncoder(qrcode.DefaultOptions()),
		pdf.NewRenderer(pdf.DefaultConfig()),
		service.DefaultCodeAttempts,
		service.DefaultRenderTimeout,
	)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "receipt-service", Env: "test"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}

	return routes.Setup(&routes.Handlers{
		Receipt: handler.NewReceiptHandler(receiptService, validation.New(), ""),
	}, cfg)
}

const validSubmission = `{
	"pos_id": "POS1",
	"store_id": "STORE-7",
	"items": [{"sku": "A1", "name": "Pen", "qty": 2, "price": 10}],
	"discount": 0,
	"tax": 1,
	"payment_mode": "Cash",
	"total_amount": 21
}`

func generate(t *testing.T, router *gin.Engine, body string) map[string]interface{} {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/generate-receipt", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return resp
}

func TestGenerate(t *testing.T) {
	router := newRouter()
	resp := generate(t, router, validSubmission)

	if resp["success"] != true {
		t.Fatalf("expected success true, got %v", resp["success"])
	}
	receiptID, _ := resp["receipt_id"].(string)
	if receiptID == "" {
		t.Fatal("expected a receipt_id")
	}
	qrCode, _ := resp["qr_code"].(string)
	if !strings.HasPrefix(qrCode, "data:image/png;base64,") {
		t.Fatal("expected qr_code to be a PNG data URI")
	}
	downloadURL, _ := resp["download_url"].(string)
	if !strings.HasSuffix(downloadURL, "/download/"+receiptID) {
		t.Fatalf("unexpected download_url %q", downloadURL)
	}
	shortURL, _ := resp["short_url"].(string)
	if !strings.Contains(shortURL, "/s/") {
		t.Fatalf("unexpected short_url %q", shortURL)
	}
}

func TestGenerate_MissingPosID(t *testing.T) {
	router := newRouter()

	body := `{"items": [{"sku": "A1", "name": "Pen", "qty": 1, "price": 5}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-receipt", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("error")) {
		t.Fatalf("expected an error body, got %s", w.Body.String())
	}
}

func TestGenerate_EmptyItems(t *testing.T) {
	router := newRouter()

	for _, body := range []string{
		`{"pos_id": "POS1"}`,
		`{"pos_id": "POS1", "items": []}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/generate-receipt", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestFetch_RoundTripAndIdempotentRead(t *testing.T) {
	router := newRouter()
	resp := generate(t, router, validSubmission)
	receiptID := resp["receipt_id"].(string)

	var bodies []string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/receipt/"+receiptID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		bodies = append(bodies, w.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Fatal("expected identical bodies for repeated reads")
	}

	var receipt map[string]interface{}
	if err := json.Unmarshal([]byte(bodies[0]), &receipt); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if receipt["pos_id"] != "POS1" || receipt["receipt_id"] != receiptID {
		t.Fatalf("fetched record does not match submission: %v", receipt)
	}
}

func TestFetch_Unknown(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/receipt/does-not-exist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestResolve_RedirectsToDownloadURL(t *testing.T) {
	router := newRouter()
	resp := generate(t, router, validSubmission)
	receiptID := resp["receipt_id"].(string)
	shortURL := resp["short_url"].(string)
	code := shortURL[strings.LastIndex(shortURL, "/")+1:]

	req := httptest.NewRequest(http.MethodGet, "/s/"+code, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/download/"+receiptID {
		t.Fatalf("expected redirect to /download/%s, got %q", receiptID, loc)
	}
}

func TestResolve_Unknown(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/s/zzzzzz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDownload(t *testing.T) {
	router := newRouter()
	resp := generate(t, router, validSubmission)
	receiptID := resp["receipt_id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/download/"+receiptID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	want := `attachment; filename="receipt-` + receiptID + `.pdf"`
	if cd := w.Header().Get("Content-Disposition"); cd != want {
		t.Fatalf("expected %q, got %q", want, cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected a PDF body")
	}
}

func TestDownload_Unknown(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/download/does-not-exist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestQRImage(t *testing.T) {
	router := newRouter()
	resp := generate(t, router, validSubmission)
	receiptID := resp["receipt_id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/qr/"+receiptID+"/image", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	if len(w.Body.Bytes()) == 0 || w.Body.Bytes()[0] != 0x89 {
		t.Fatal("expected raw PNG bytes")
	}
}

func TestAnalytics(t *testing.T) {
	router := newRouter()
	resp := generate(t, router, validSubmission)
	shortURL := resp["short_url"].(string)
	code := shortURL[strings.LastIndex(shortURL, "/")+1:]

	// One scan through the short link.
	req := httptest.NewRequest(http.MethodGet, "/s/"+code, nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var analytics map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &analytics); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if analytics["total_receipts"].(float64) != 1 {
		t.Fatalf("expected 1 receipt, got %v", analytics["total_receipts"])
	}
	if analytics["total_scans"].(float64) != 1 {
		t.Fatalf("expected 1 scan, got %v", analytics["total_scans"])
	}
}

func TestHealth(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var health map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if health["status"] != "OK" {
		t.Fatalf("expected status OK, got %v", health["status"])
	}
	if health["timestamp"] == "" {
		t.Fatal("expected a timestamp")
	}
}
