package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/handler"
	"github.com/coder-muller/radio-cultura-go/internal/infra/cache"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

// stubStore is a minimal DataStore for routing tests. Override the function
// fields a test cares about; everything else succeeds with empty values.
type stubStore struct {
	listClientsFn  func(ctx context.Context, tenantKey string) ([]domain.Client, error)
	createClientFn func(ctx context.Context, client *domain.Client) (*domain.Client, error)
	getContractFn  func(ctx context.Context, tenantKey string, id int64) (*domain.Contract, error)
	listInvoicesFn func(ctx context.Context, tenantKey string) ([]domain.Invoice, error)
}

func (s *stubStore) ListClients(ctx context.Context, tenantKey string) ([]domain.Client, error) {
	if s.listClientsFn != nil {
		return s.listClientsFn(ctx, tenantKey)
	}
	return []domain.Client{}, nil
}

func (s *stubStore) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if s.createClientFn != nil {
		return s.createClientFn(ctx, client)
	}
	return client, nil
}

func (s *stubStore) UpdateClient(ctx context.Context, id int64, client *domain.Client) (*domain.Client, error) {
	return client, nil
}
func (s *stubStore) DeleteClient(ctx context.Context, id int64) error { return nil }

func (s *stubStore) ListAgents(ctx context.Context, tenantKey string) ([]domain.Agent, error) {
	return []domain.Agent{}, nil
}
func (s *stubStore) CreateAgent(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	return agent, nil
}
func (s *stubStore) UpdateAgent(ctx context.Context, id int64, agent *domain.Agent) (*domain.Agent, error) {
	return agent, nil
}
func (s *stubStore) DeleteAgent(ctx context.Context, id int64) error { return nil }

func (s *stubStore) ListPrograms(ctx context.Context, tenantKey string) ([]domain.Program, error) {
	return []domain.Program{}, nil
}
func (s *stubStore) CreateProgram(ctx context.Context, program *domain.Program) (*domain.Program, error) {
	return program, nil
}
func (s *stubStore) UpdateProgram(ctx context.Context, id int64, program *domain.Program) (*domain.Program, error) {
	return program, nil
}
func (s *stubStore) DeleteProgram(ctx context.Context, id int64) error { return nil }

func (s *stubStore) ListPaymentMethods(ctx context.Context, tenantKey string) ([]domain.PaymentMethod, error) {
	return []domain.PaymentMethod{}, nil
}
func (s *stubStore) CreatePaymentMethod(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	return method, nil
}
func (s *stubStore) UpdatePaymentMethod(ctx context.Context, id int64, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	return method, nil
}
func (s *stubStore) DeletePaymentMethod(ctx context.Context, id int64) error { return nil }

func (s *stubStore) ListLogs(ctx context.Context, tenantKey string) ([]domain.LogEntry, error) {
	return []domain.LogEntry{}, nil
}

func (s *stubStore) ListContracts(ctx context.Context, tenantKey string) ([]domain.Contract, error) {
	return []domain.Contract{}, nil
}

func (s *stubStore) GetContract(ctx context.Context, tenantKey string, id int64) (*domain.Contract, error) {
	if s.getContractFn != nil {
		return s.getContractFn(ctx, tenantKey, id)
	}
	return &domain.Contract{ID: id}, nil
}

func (s *stubStore) CreateContract(ctx context.Context, contract *domain.Contract) (*domain.Contract, error) {
	return contract, nil
}
func (s *stubStore) UpdateContract(ctx context.Context, id int64, contract *domain.Contract) (*domain.Contract, error) {
	return contract, nil
}
func (s *stubStore) DeleteContract(ctx context.Context, id int64) error { return nil }

func (s *stubStore) ListInvoices(ctx context.Context, tenantKey string) ([]domain.Invoice, error) {
	if s.listInvoicesFn != nil {
		return s.listInvoicesFn(ctx, tenantKey)
	}
	return []domain.Invoice{}, nil
}

func (s *stubStore) ListPendingInvoices(ctx context.Context, tenantKey string, contractID int64) ([]domain.Invoice, error) {
	return []domain.Invoice{}, nil
}
func (s *stubStore) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	return invoice, nil
}
func (s *stubStore) UpdateInvoice(ctx context.Context, id int64, invoice *domain.Invoice) (*domain.Invoice, error) {
	return invoice, nil
}
func (s *stubStore) RegisterPayment(ctx context.Context, id int64, paidDate time.Time, paymentMethodID int64) error {
	return nil
}
func (s *stubStore) DeleteInvoice(ctx context.Context, id int64) error { return nil }

func (s *stubStore) ImportRecord(ctx context.Context, table string, record map[string]any) error {
	return nil
}

func newTestRouter(store *stubStore) http.Handler {
	metrics := observability.NewMetrics()
	logger := zap.NewNop()

	auth := service.NewAuthService("", "senha-teste", "chave-1", "router-test-secret", time.Hour, logger)
	catalog := service.NewCatalogService(store, cache.New[any](5*time.Minute), metrics, logger)
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

func loginToken(t *testing.T, router http.Handler) string {
	t.Helper()
	body := strings.NewReader(`{"senha":"senha-teste"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login body: %v", err)
	}
	return resp.AccessToken
}

func authedRequest(t *testing.T, router http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	token := loginToken(t, router)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var status domain.HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("healthz body: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("status = %q, want healthy", status.Status)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("readyz body: %v", err)
	}
	if payload["status"] != "ready" {
		t.Errorf("status = %v, want ready", payload["status"])
	}
	if _, ok := payload["faturasGeradas"]; !ok {
		t.Error("readyz payload missing faturasGeradas")
	}
	if _, ok := payload["faturasComFalha"]; !ok {
		t.Error("readyz payload missing faturasComFalha")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&stubStore{})

	// A list call records a cache miss, so the application registry has
	// at least one series to export.
	authedRequest(t, router, http.MethodGet, "/v1/clientes", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "radio_cache_misses_total") {
		t.Errorf("/metrics body missing radio_cache_misses_total:\n%s", rec.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(&stubStore{})

	for _, path := range []string{"/v1/clientes", "/v1/contratos", "/v1/dashboard"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without token = %d, want 401", path, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/clientes", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token = %d, want 401", rec.Code)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"senha":"errada"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestListClientsPaginates(t *testing.T) {
	store := &stubStore{
		listClientsFn: func(ctx context.Context, tenantKey string) ([]domain.Client, error) {
			if tenantKey != "chave-1" {
				t.Errorf("tenant key = %q, want chave-1 (from the token)", tenantKey)
			}
			return []domain.Client{
				{ID: 1, LegalName: "Alfa"},
				{ID: 2, LegalName: "Bravo"},
				{ID: 3, LegalName: "Charlie"},
			}, nil
		},
	}
	router := newTestRouter(store)

	rec := authedRequest(t, router, http.MethodGet, "/v1/clientes?page=1&page_size=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.ListResponse[domain.Client]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body: %v", err)
	}
	if resp.Total != 3 || len(resp.Data) != 2 || !resp.HasMore {
		t.Errorf("resp = total %d, page of %d, has_more %v", resp.Total, len(resp.Data), resp.HasMore)
	}
}

func TestCreateClientReturns201(t *testing.T) {
	router := newTestRouter(&stubStore{})

	body := []byte(`{"razaoSocial":"Padaria Central"}`)
	rec := authedRequest(t, router, http.MethodPost, "/v1/clientes", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateClientValidationMapsTo400(t *testing.T) {
	router := newTestRouter(&stubStore{})

	rec := authedRequest(t, router, http.MethodPost, "/v1/clientes", []byte(`{"razaoSocial":""}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetContractNotFoundMapsTo404(t *testing.T) {
	store := &stubStore{
		getContractFn: func(ctx context.Context, tenantKey string, id int64) (*domain.Contract, error) {
			return nil, &domain.ErrNotFound{Resource: "contrato", ID: "5"}
		},
	}
	router := newTestRouter(store)

	rec := authedRequest(t, router, http.MethodGet, "/v1/contratos/5", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestInvoiceReportReturnsPDF(t *testing.T) {
	store := &stubStore{
		listInvoicesFn: func(ctx context.Context, tenantKey string) ([]domain.Invoice, error) {
			value := 100.0
			return []domain.Invoice{{ID: 1, Value: &value}}, nil
		},
	}
	router := newTestRouter(store)

	rec := authedRequest(t, router, http.MethodGet, "/v1/relatorios/faturas", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body does not look like a PDF")
	}
}

func TestDevImportRequiresTableParam(t *testing.T) {
	router := newTestRouter(&stubStore{})

	rec := authedRequest(t, router, http.MethodPost, "/v1/dev/import", []byte("<dataroot/>"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDevImportLoadsRows(t *testing.T) {
	router := newTestRouter(&stubStore{})

	dump := []byte(`<dataroot><row><column name="razaoSocial">Padaria Central</column></row></dataroot>`)
	rec := authedRequest(t, router, http.MethodPost, "/v1/dev/import?tabela=clientes", dump)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.DevImportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body: %v", err)
	}
	if resp.Result.Succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", resp.Result.Succeeded)
	}
}
