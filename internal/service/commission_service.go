package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/billing"
	"github.com/coder-muller/radio-cultura-go/internal/dates"
	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/listing"
	"github.com/coder-muller/radio-cultura-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var commissionTracer = otel.Tracer("service/commission")

// CommissionService builds the commission statement: every paid invoice
// joined with its contract's commission percentage and the responsible
// agent. Only settled invoices owe commission.
type CommissionService struct {
	store   port.DataStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewCommissionService creates the commission service with all dependencies injected.
func NewCommissionService(store port.DataStore, metrics *observability.Metrics, logger *zap.Logger) *CommissionService {
	return &CommissionService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// CommissionFilter narrows the statement by paid-date range and agent name.
type CommissionFilter struct {
	From  *time.Time
	To    *time.Time
	Agent string // matched case-insensitively against the agent name
}

// Report assembles the commission statement. Invoices, contracts and
// agents are fetched concurrently; a failure on any branch fails the whole
// report, since a partial join would misstate what the station owes.
func (s *CommissionService) Report(ctx context.Context, tenantKey string, filter CommissionFilter) (*domain.CommissionReport, error) {
	ctx, span := commissionTracer.Start(ctx, "CommissionService.Report")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("commission_report", time.Since(start))
	}()

	var (
		invoices  []domain.Invoice
		contracts []domain.Contract
		agents    []domain.Agent
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		invoices, err = s.store.ListInvoices(gCtx, tenantKey)
		if err != nil {
			s.logger.Error("commission report: failed to fetch invoices", zap.Error(err))
			s.metrics.IncrExternalError("faturamento")
			return fmt.Errorf("invoices fetch: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		contracts, err = s.store.ListContracts(gCtx, tenantKey)
		if err != nil {
			s.logger.Error("commission report: failed to fetch contracts", zap.Error(err))
			s.metrics.IncrExternalError("contratos")
			return fmt.Errorf("contracts fetch: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		agents, err = s.store.ListAgents(gCtx, tenantKey)
		if err != nil {
			s.logger.Error("commission report: failed to fetch agents", zap.Error(err))
			s.metrics.IncrExternalError("corretores")
			return fmt.Errorf("agents fetch: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildReport(invoices, contracts, agents, filter), nil
}

// buildReport joins the three collections into statement rows.
func buildReport(invoices []domain.Invoice, contracts []domain.Contract, agents []domain.Agent, filter CommissionFilter) *domain.CommissionReport {
	byContract := make(map[int64]*domain.Contract, len(contracts))
	for i := range contracts {
		byContract[contracts[i].ID] = &contracts[i]
	}
	byAgent := make(map[int64]*domain.Agent, len(agents))
	for i := range agents {
		byAgent[agents[i].ID] = &agents[i]
	}

	report := &domain.CommissionReport{Rows: []domain.CommissionRow{}}
	for _, inv := range invoices {
		if inv.PaidDate == nil {
			continue
		}
		if filter.From != nil && inv.PaidDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && inv.PaidDate.After(*filter.To) {
			continue
		}

		row := rowFor(inv, byContract, byAgent)
		if !listing.MatchFold(row.AgentName, filter.Agent) {
			continue
		}

		report.Rows = append(report.Rows, row)
		report.TotalValue += row.Value
		report.TotalCommission += row.Commission
	}
	return report
}

func rowFor(inv domain.Invoice, byContract map[int64]*domain.Contract, byAgent map[int64]*domain.Agent) domain.CommissionRow {
	row := domain.CommissionRow{
		InvoiceID: inv.ID,
		AgentName: domain.AgentUnassigned,
		IssueDate: dates.FormatPtr(inv.IssueDate),
		DueDate:   dates.FormatPtr(inv.DueDate),
		PaidDate:  dates.FormatPtr(inv.PaidDate),
		Value:     inv.Amount(),
	}
	if inv.Client != nil {
		row.ClientName = inv.Client.LegalName
	}
	if inv.Program != nil {
		row.ProgramName = inv.Program.Name
	}

	var contract *domain.Contract
	if inv.ContractID != nil {
		contract = byContract[*inv.ContractID]
	}
	if contract != nil && contract.CommissionPct != nil {
		row.CommissionPct = *contract.CommissionPct
	}

	// The contract names the responsible agent; the copy on the invoice is
	// the fallback for imported or hand-edited charges.
	agentID := inv.AgentID
	if contract != nil && contract.AgentID != nil {
		agentID = contract.AgentID
	}
	if agentID != nil {
		if agent := byAgent[*agentID]; agent != nil {
			row.AgentName = agent.Name
		}
	}

	row.Commission = billing.Commission(row.Value, row.CommissionPct)
	return row
}
