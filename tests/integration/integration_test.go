package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/handler"
	"github.com/coder-muller/radio-cultura-go/internal/infra/cache"
	"github.com/coder-muller/radio-cultura-go/internal/infra/cgmcloud"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/infra/resilience"
	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

// fakeDataService is an in-memory stand-in for the CGM Cloud REST API, just
// enough of its routes to carry the contract lifecycle end to end.
type fakeDataService struct {
	mu        sync.Mutex
	contracts map[int64]domain.Contract
	invoices  map[int64]domain.Invoice
	nextID    int64
}

func newFakeDataService() *fakeDataService {
	return &fakeDataService{
		contracts: map[int64]domain.Contract{},
		invoices:  map[int64]domain.Invoice{},
		nextID:    1,
	}
}

func (f *fakeDataService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /contratos", func(w http.ResponseWriter, r *http.Request) {
		var c domain.Contract
		json.NewDecoder(r.Body).Decode(&c)
		f.mu.Lock()
		c.ID = f.nextID
		f.nextID++
		f.contracts[c.ID] = c
		f.mu.Unlock()
		json.NewEncoder(w).Encode(c)
	})

	mux.HandleFunc("GET /contratos/{chave}/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, c := range f.contracts {
			json.NewEncoder(w).Encode(c)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("POST /faturamento", func(w http.ResponseWriter, r *http.Request) {
		var inv domain.Invoice
		json.NewDecoder(r.Body).Decode(&inv)
		f.mu.Lock()
		inv.ID = f.nextID
		f.nextID++
		f.invoices[inv.ID] = inv
		f.mu.Unlock()
		json.NewEncoder(w).Encode(inv)
	})

	mux.HandleFunc("GET /faturamento/{chave}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := make([]domain.Invoice, 0, len(f.invoices))
		for _, inv := range f.invoices {
			out = append(out, inv)
		}
		json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("GET /forma-pagamento/{chave}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.PaymentMethod{})
	})

	return mux
}

func newAPI(t *testing.T, baseURL string) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("integration")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	store := cgmcloud.NewClient(httpClient, baseURL, cb, cfg, logger)

	auth := service.NewAuthService("", "senha-teste", "chave-1", "integration-secret", time.Hour, logger)
	catalog := service.NewCatalogService(store, cache.New[any](time.Minute), metrics, logger)
	contracts := service.NewContractService(store, metrics, logger)
	invoices := service.NewInvoiceService(store, metrics, logger)
	commissions := service.NewCommissionService(store, metrics, logger)
	dashboard := service.NewDashboardService(store, metrics, logger)
	reports := service.NewReportService(store, commissions, metrics, logger)
	devTools := service.NewDevToolsService(store, metrics, logger)

	return handler.NewRouter(handler.Services{
		Auth:        auth,
		Catalog:     catalog,
		Contracts:   contracts,
		Invoices:    invoices,
		Commissions: commissions,
		Dashboard:   dashboard,
		Reports:     reports,
		DevTools:    devTools,
	}, metrics, logger)
}

// TestIntegration_ContractLifecycle drives login and contract creation through
// the real HTTP stack against an in-memory data service, checking that the
// invoice run lands in storage.
func TestIntegration_ContractLifecycle(t *testing.T) {
	fake := newFakeDataService()
	dataServer := httptest.NewServer(fake.handler())
	defer dataServer.Close()

	router := newAPI(t, dataServer.URL)

	// --- Login ---
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"senha":"senha-teste"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}
	var login domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("login body: %v", err)
	}

	// --- Create a three-month contract ---
	body, _ := json.Marshal(domain.ContractRequest{
		ClientID:   1,
		ProgramID:  2,
		IssueDate:  "10/01/2025",
		EndDate:    "20/03/2025",
		Value:      f64(500),
		BillingDay: iptr(15),
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/contratos", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create contract returned %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.ContractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("create body: %v", err)
	}
	if created.Contract == nil || created.Contract.ID == 0 {
		t.Fatal("stored contract has no id")
	}
	if created.Invoices == nil || created.Invoices.Succeeded != 3 {
		t.Fatalf("invoice run = %+v, want 3 succeeded", created.Invoices)
	}

	fake.mu.Lock()
	stored := len(fake.invoices)
	fake.mu.Unlock()
	if stored != 3 {
		t.Errorf("data service holds %d invoices, want 3", stored)
	}

	// --- The invoice list reflects the run ---
	req = httptest.NewRequest(http.MethodGet, "/v1/faturamento", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list invoices returned %d: %s", rec.Code, rec.Body.String())
	}
	var list domain.ListResponse[domain.Invoice]
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("list body: %v", err)
	}
	if list.Total != 3 {
		t.Errorf("invoice total = %d, want 3", list.Total)
	}
}

// TestIntegration_DataServiceDown maps an unreachable data service to 502.
func TestIntegration_DataServiceDown(t *testing.T) {
	downServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer downServer.Close()

	router := newAPI(t, downServer.URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"senha":"senha-teste"}`)))
	var login domain.LoginResponse
	json.Unmarshal(rec.Body.Bytes(), &login)

	req := httptest.NewRequest(http.MethodGet, "/v1/faturamento", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
}

func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }
