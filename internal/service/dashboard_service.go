package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/finance"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var dashboardTracer = otel.Tracer("service/dashboard")

// DashboardService computes the monthly KPI panel from invoices, contracts
// and clients. All the arithmetic lives in the finance package; this service
// only fetches the inputs and picks the reference period.
type DashboardService struct {
	store   port.DataStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDashboardService creates the dashboard service with all dependencies injected.
func NewDashboardService(store port.DataStore, metrics *observability.Metrics, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Metrics computes the KPI panel for the given month and year. A zero month
// or year falls back to the current one. The three collections are fetched
// concurrently and any failure fails the panel as a whole.
func (s *DashboardService) Metrics(ctx context.Context, tenantKey string, month, year int) (*domain.DashboardMetrics, error) {
	ctx, span := dashboardTracer.Start(ctx, "DashboardService.Metrics")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("dashboard", time.Since(start))
	}()

	now := time.Now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	var (
		invoices  []domain.Invoice
		contracts []domain.Contract
		clients   []domain.Client
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		invoices, err = s.store.ListInvoices(gCtx, tenantKey)
		if err != nil {
			s.logger.Error("dashboard: failed to fetch invoices", zap.Error(err))
			s.metrics.IncrExternalError("faturamento")
			return fmt.Errorf("invoices fetch: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		contracts, err = s.store.ListContracts(gCtx, tenantKey)
		if err != nil {
			s.logger.Error("dashboard: failed to fetch contracts", zap.Error(err))
			s.metrics.IncrExternalError("contratos")
			return fmt.Errorf("contracts fetch: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		clients, err = s.store.ListClients(gCtx, tenantKey)
		if err != nil {
			s.logger.Error("dashboard: failed to fetch clients", zap.Error(err))
			s.metrics.IncrExternalError("clientes")
			return fmt.Errorf("clients fetch: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	period := finance.Period{Month: time.Month(month), Year: year}
	return finance.Compute(invoices, contracts, clients, period, now), nil
}
