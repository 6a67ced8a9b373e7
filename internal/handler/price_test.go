package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tgju-tracker/internal/domain"
	"tgju-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestRouter(view *service.SnapshotView, apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(testTracer, view).RegisterRoutes(r, apiKey)
	return r
}

func serve(r *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func populatedView() *service.SnapshotView {
	v := service.NewSnapshotView()
	v.Set(&domain.PriceSnapshot{
		Prices: map[string]float64{
			"price_ounce":     2650.4,
			"price_dollar_rl": 1005200,
		},
		CapturedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	return v
}

func TestGetAllPricesBeforeFirstSnapshot(t *testing.T) {
	w := serve(newTestRouter(service.NewSnapshotView(), ""), "/api/prices", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestGetAllPrices(t *testing.T) {
	w := serve(newTestRouter(populatedView(), ""), "/api/prices", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp pricesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Prices) != 2 || resp.Prices[0].InstrumentID != "price_dollar_rl" || resp.Prices[1].InstrumentID != "price_ounce" {
		t.Fatalf("expected catalog order, got %+v", resp.Prices)
	}
	if resp.Prices[0].Names[domain.LocaleFA] != "دلار آمریکا" {
		t.Fatalf("unexpected names: %+v", resp.Prices[0].Names)
	}
}

func TestGetPrice(t *testing.T) {
	r := newTestRouter(populatedView(), "")

	w := serve(r, "/api/prices/PRICE_OUNCE", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Price float64 `json:"price"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Price != 2650.4 {
		t.Fatalf("unexpected price: %s", w.Body.String())
	}

	if w := serve(r, "/api/prices/price_btc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown instrument, got %d", w.Code)
	}
	if w := serve(r, "/api/prices/price_eur", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unreported instrument, got %d", w.Code)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	r := newTestRouter(populatedView(), "secret")

	if w := serve(r, "/api/prices", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := serve(r, "/api/prices", map[string]string{"X-API-Key": "wrong"}); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if w := serve(r, "/api/prices", map[string]string{"X-API-Key": "secret"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := serve(r, "/health", nil); w.Code != http.StatusOK {
		t.Fatalf("health must stay open, got %d", w.Code)
	}
}
