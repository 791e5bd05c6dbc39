package handler

import (
	"net/http"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles everything the router serves.
type Services struct {
	Auth        *service.AuthService
	Catalog     *service.CatalogService
	Contracts   *service.ContractService
	Invoices    *service.InvoiceService
	Commissions *service.CommissionService
	Dashboard   *service.DashboardService
	Reports     *service.ReportService
	DevTools    *service.DevToolsService
}

// NewRouter creates the HTTP router with all routes and middleware.
// Everything under /v1 except /v1/auth/login requires a session token.
func NewRouter(svcs Services, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svcs.Catalog, logger))
	r.Get("/readyz", readyzHandler(metrics))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Autenticação
		// =============================================
		r.Post("/auth/login", authLoginHandler(svcs.Auth, logger))

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(svcs.Auth, logger))

			// =============================================
			// Cadastros
			// =============================================
			r.Route("/clientes", func(r chi.Router) {
				r.Get("/", listClientsHandler(svcs.Catalog, logger))
				r.Post("/", createClientHandler(svcs.Catalog, logger))
				r.Put("/{id}", updateClientHandler(svcs.Catalog, logger))
				r.Delete("/{id}", deleteClientHandler(svcs.Catalog, logger))
			})
			r.Route("/corretores", func(r chi.Router) {
				r.Get("/", listAgentsHandler(svcs.Catalog, logger))
				r.Post("/", createAgentHandler(svcs.Catalog, logger))
				r.Put("/{id}", updateAgentHandler(svcs.Catalog, logger))
				r.Delete("/{id}", deleteAgentHandler(svcs.Catalog, logger))
			})
			r.Route("/programacao", func(r chi.Router) {
				r.Get("/", listProgramsHandler(svcs.Catalog, logger))
				r.Post("/", createProgramHandler(svcs.Catalog, logger))
				r.Put("/{id}", updateProgramHandler(svcs.Catalog, logger))
				r.Delete("/{id}", deleteProgramHandler(svcs.Catalog, logger))
			})
			r.Route("/forma-pagamento", func(r chi.Router) {
				r.Get("/", listPaymentMethodsHandler(svcs.Catalog, logger))
				r.Post("/", createPaymentMethodHandler(svcs.Catalog, logger))
				r.Put("/{id}", updatePaymentMethodHandler(svcs.Catalog, logger))
				r.Delete("/{id}", deletePaymentMethodHandler(svcs.Catalog, logger))
			})
			r.Get("/logs", listLogsHandler(svcs.Catalog, logger))

			// =============================================
			// Contratos
			// =============================================
			r.Route("/contratos", func(r chi.Router) {
				r.Get("/", listContractsHandler(svcs.Contracts, logger))
				r.Post("/", createContractHandler(svcs.Contracts, logger))
				r.Get("/{id}", getContractHandler(svcs.Contracts, logger))
				r.Put("/{id}", updateContractHandler(svcs.Contracts, logger))
				r.Delete("/{id}", deleteContractHandler(svcs.Contracts, logger))
				r.Post("/{id}/cancelar", cancelContractHandler(svcs.Contracts, logger))
				r.Post("/{id}/faturas", generateInvoiceHandler(svcs.Contracts, logger))
			})

			// =============================================
			// Faturamento
			// =============================================
			r.Route("/faturamento", func(r chi.Router) {
				r.Get("/", listInvoicesHandler(svcs.Invoices, logger))
				r.Put("/{id}", updateInvoiceHandler(svcs.Invoices, logger))
				r.Put("/{id}/pagamento", registerPaymentHandler(svcs.Invoices, logger))
				r.Delete("/{id}", deleteInvoiceHandler(svcs.Invoices, logger))
			})

			// =============================================
			// Comissões & Dashboard
			// =============================================
			r.Get("/comissoes", commissionReportHandler(svcs.Commissions, logger))
			r.Get("/dashboard", dashboardHandler(svcs.Dashboard, logger))

			// =============================================
			// Relatórios (PDF)
			// =============================================
			r.Route("/relatorios", func(r chi.Router) {
				r.Get("/faturas", invoiceSummaryReportHandler(svcs.Reports, logger))
				r.Get("/faturas/detalhado", invoiceSheetsReportHandler(svcs.Reports, logger))
				r.Get("/comissoes", commissionPDFHandler(svcs.Reports, logger))
			})

			// =============================================
			// Dev Tools (legacy import)
			// =============================================
			r.Post("/dev/import", devImportHandler(svcs.DevTools, logger))
		})
	})

	return r
}

// ============================================================
// Probes
// ============================================================

func healthzHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "radio-cultura-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		start := time.Now()
		_, err := catalog.PaymentMethods(ctx, "health-check")
		latency := time.Since(start).Milliseconds()
		status := "healthy"
		if err != nil {
			status = "degraded"
			logger.Warn("healthz: data service probe failed", zap.Error(err))
		}
		services = append(services, domain.ServiceHealth{
			Name: "cgmcloud", Status: status, LatencyMs: latency, LastChecked: now,
		})

		overall := "healthy"
		for _, s := range services {
			if s.Status == "degraded" {
				overall = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overall,
			Services: services,
		})
	}
}

func readyzHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, failed := metrics.InvoiceRunTotals()
		writeJSON(w, http.StatusOK, map[string]any{
			"status":          "ready",
			"faturasGeradas":  ok,
			"faturasComFalha": failed,
		})
	}
}
