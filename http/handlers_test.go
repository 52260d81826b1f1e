package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"pdv-pricing/domain"
	"pdv-pricing/repository"
	"pdv-pricing/service"
)

func newTestRouter(t *testing.T, capacity int) (http.Handler, *repository.ProductRepositoryMemory) {
	t.Helper()

	fees, err := service.NewFeeScheduleService(context.Background(), repository.NewMemoryFeeScheduleStore())
	if err != nil {
		t.Fatalf("fee schedule: %v", err)
	}
	products := repository.NewProductRepositoryMemory(
		domain.Product{ID: "p1", SKU: "CAB-001", Name: "Cabo USB-C", Category: "acessorios", CostPrice: 10, SalePrice: 25},
	)

	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	router := NewRouter(Handlers{
		Installments:     NewInstallmentHandler(service.NewInstallmentService(fees, repository.NewQuoteRepositoryMemory(10), repository.NewMemoryCache(), time.Minute)),
		Checkout:         NewCheckoutHandler(service.NewCheckoutService(fees)),
		Currency:         NewCurrencyHandler(),
		FeeSchedule:      NewFeeScheduleHandler(fees),
		PriceAdjustments: NewPriceAdjustmentHandler(service.NewPriceAdjustmentService(products)),
	}, limiter)
	return router, products
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCalculateInstallments_OK(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	w := do(router, http.MethodPost, "/pricing/installments",
		`{"amount": 1000, "method": "credit", "installments": 12, "with_interest": true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var plan domain.InstallmentPlan
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if plan.TotalPayable != 1099.9 || plan.Installments != 12 {
		t.Errorf("unexpected plan: %+v", plan)
	}
}

func TestCalculateInstallments_DefaultsToOneInstallment(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	w := do(router, http.MethodPost, "/pricing/installments", `{"amount": 50, "method": "credit"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCalculateInstallments_Errors(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"method not allowed", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"invalid json", http.MethodPost, `{invalid-json}`, http.StatusBadRequest},
		{"installments out of range", http.MethodPost, `{"amount": 10, "method": "credit", "installments": 24}`, http.StatusBadRequest},
		{"unknown method", http.MethodPost, `{"amount": 10, "method": "boleto"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(router, tt.method, "/pricing/installments", tt.body); w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestSimulate_ReturnsAllCounts(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	w := do(router, http.MethodPost, "/pricing/simulate", `{"amount": 250, "with_interest": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result domain.SimulationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Plans) != domain.MaxInstallments {
		t.Errorf("expected %d plans, got %d", domain.MaxInstallments, len(result.Plans))
	}
}

func TestSimulateExport_ReturnsWorkbook(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	w := do(router, http.MethodPost, "/pricing/simulate/export", `{"amount": 250}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxMIME {
		t.Errorf("unexpected content type %q", ct)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("expected a zip payload")
	}
}

func TestCheckout_Settle(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	w := do(router, http.MethodPost, "/pricing/checkout",
		`{"total": 87.5, "payments": [{"method": "cash", "amount": 100}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var s domain.Settlement
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Change != 12.5 {
		t.Errorf("expected change 12.5, got %v", s.Change)
	}

	if w := do(router, http.MethodPost, "/pricing/checkout", `{"total": 10, "payments": [{"method": "pix", "amount": 20}]}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on overpayment, got %d", w.Code)
	}
}

func TestCurrencyEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	tests := []struct {
		path string
		body string
		want string
	}{
		{"/currency/format", `{"amount": 1234.5}`, `"display":"1.234,50"`},
		{"/currency/mask", `{"input": "0,500"}`, `"display":"5,00"`},
		{"/currency/parse", `{"text": "1.234,56"}`, `"amount":1234.56`},
		{"/currency/parse", `{"text": "abc"}`, `"amount":0`},
	}

	for _, tt := range tests {
		w := do(router, http.MethodPost, tt.path, tt.body)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", tt.path, w.Code)
			continue
		}
		if !bytes.Contains(w.Body.Bytes(), []byte(tt.want)) {
			t.Errorf("%s: expected %s in %s", tt.path, tt.want, w.Body.String())
		}
	}

	if w := do(router, http.MethodPost, "/currency/parse", `{"text": "abc", "strict": true}`); w.Code != http.StatusBadRequest {
		t.Errorf("strict parse: expected 400, got %d", w.Code)
	}
}

func TestFeeSchedule_GetAndPut(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	w := do(router, http.MethodGet, "/fees/schedule", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var schedule domain.FeeSchedule
	if err := json.Unmarshal(w.Body.Bytes(), &schedule); err != nil {
		t.Fatalf("decode: %v", err)
	}
	schedule.CreditFeeRate = 0.05
	body, _ := json.Marshal(schedule)

	w = do(router, http.MethodPut, "/fees/schedule", string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated domain.FeeSchedule
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Version != 2 || updated.CreditFeeRate != 0.05 {
		t.Errorf("unexpected update result: %+v", updated)
	}

	schedule.InstallmentRates[0] = 3
	body, _ = json.Marshal(schedule)
	if w := do(router, http.MethodPut, "/fees/schedule", string(body)); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid schedule, got %d", w.Code)
	}

	if w := do(router, http.MethodDelete, "/fees/schedule", ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestPriceAdjustments(t *testing.T) {
	router, products := newTestRouter(t, 100)

	w := do(router, http.MethodPost, "/inventory/price-adjustments/export",
		`{"mode": "increase_percent", "magnitude": "10", "apply_to_sale": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", w.Code)
	}
	if p, _ := products.Get("p1"); p.SalePrice != 25 {
		t.Fatalf("export must not persist, sale price is %v", p.SalePrice)
	}

	w = do(router, http.MethodPost, "/inventory/price-adjustments",
		`{"mode": "increase_percent", "magnitude": "10", "apply_to_sale": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if p, _ := products.Get("p1"); p.SalePrice != 27.5 {
		t.Errorf("expected sale price 27.5, got %v", p.SalePrice)
	}

	w = do(router, http.MethodPost, "/inventory/price-adjustments", `{"mode": "halve", "apply_to_sale": true}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown mode, got %d", w.Code)
	}
}

func TestRouter_RateLimited(t *testing.T) {
	router, _ := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		if w := do(router, http.MethodPost, "/currency/mask", `{"input": "1"}`); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := do(router, http.MethodPost, "/currency/mask", `{"input": "1"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRecentQuotes(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	for _, body := range []string{
		`{"amount": 100, "method": "pix"}`,
		`{"amount": 250, "method": "credit", "installments": 3}`,
	} {
		if w := do(router, http.MethodPost, "/pricing/installments", body); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := do(router, http.MethodGet, "/pricing/quotes?limit=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var quotes []repository.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &quotes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(quotes))
	}
	if quotes[0].Input.Method != domain.MethodCredit || quotes[0].Plan.Installments != 3 || quotes[0].ID == "" {
		t.Errorf("expected the latest credit quote, got %+v", quotes[0])
	}

	if w := do(router, http.MethodGet, "/pricing/quotes?limit=abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", w.Code)
	}
	if w := do(router, http.MethodPost, "/pricing/quotes", ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}
