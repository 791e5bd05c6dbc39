package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/billing"
	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var contractTracer = otel.Tracer("service/contract")

// ContractService manages contracts and the invoice runs their mutations
// trigger. Invoice writes are best effort: each failure is tallied in a
// BatchResult and never aborts the run, so a flaky network yields missing
// invoices to regenerate rather than a half-rolled-back contract.
type ContractService struct {
	store   port.DataStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewContractService creates the contract service with all dependencies injected.
func NewContractService(store port.DataStore, metrics *observability.Metrics, logger *zap.Logger) *ContractService {
	return &ContractService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// ============================================================
// Queries
// ============================================================

// Contracts lists every contract of the tenant.
func (s *ContractService) Contracts(ctx context.Context, tenantKey string) ([]domain.Contract, error) {
	ctx, span := contractTracer.Start(ctx, "ContractService.Contracts")
	defer span.End()

	contracts, err := s.store.ListContracts(ctx, tenantKey)
	if err != nil {
		s.metrics.IncrExternalError("contratos")
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return contracts, nil
}

// Contract fetches a single contract.
func (s *ContractService) Contract(ctx context.Context, tenantKey string, id int64) (*domain.Contract, error) {
	ctx, span := contractTracer.Start(ctx, "ContractService.Contract")
	defer span.End()

	contract, err := s.store.GetContract(ctx, tenantKey, id)
	if err != nil {
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return contract, nil
}

// ============================================================
// Create — contract plus its whole invoice run
// ============================================================

// Create validates and stores a new contract, then generates one invoice
// per month of the billing window. A contract without a billing day or an
// issue date is stored with no invoices at all.
func (s *ContractService) Create(ctx context.Context, tenantKey string, contract *domain.Contract) (*domain.Contract, *domain.BatchResult, error) {
	ctx, span := contractTracer.Start(ctx, "ContractService.Create")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("contract_create", time.Since(start))
	}()

	if err := validateContract(contract); err != nil {
		return nil, nil, err
	}

	contract.TenantKey = tenantKey
	if contract.Status == "" {
		contract.Status = domain.ContractActive
	}

	created, err := s.store.CreateContract(ctx, contract)
	if err != nil {
		s.metrics.IncrExternalError("contratos")
		return nil, nil, fmt.Errorf("create contract: %w", err)
	}
	span.SetAttributes(attribute.Int64("contract.id", created.ID))

	result := s.generateInvoiceRun(ctx, tenantKey, created)
	return created, result, nil
}

// generateInvoiceRun writes the full invoice schedule of a contract.
func (s *ContractService) generateInvoiceRun(ctx context.Context, tenantKey string, contract *domain.Contract) *domain.BatchResult {
	result := &domain.BatchResult{}
	if contract.IssueDate == nil || contract.BillingDay == nil || *contract.BillingDay < 1 {
		return result
	}

	dueDates := billing.DueDates(*contract.IssueDate, contract.EndDate, *contract.BillingDay)
	for _, due := range dueDates {
		invoice := invoiceFromContract(tenantKey, contract, due)
		_, err := s.store.CreateInvoice(ctx, invoice)
		if err != nil {
			s.logger.Error("invoice run: failed to create invoice",
				zap.Int64("contract_id", contract.ID),
				zap.Time("due_date", due),
				zap.Error(err),
			)
			s.metrics.IncrExternalError("faturamento")
		}
		result.Record(err)
	}

	s.metrics.RecordInvoiceRun(result.Succeeded, result.Failed)
	s.logger.Info("invoice run finished",
		zap.Int64("contract_id", contract.ID),
		zap.Int("attempted", result.Attempted),
		zap.Int("failed", result.Failed),
	)
	return result
}

// invoiceFromContract drafts the invoice for one competence month.
func invoiceFromContract(tenantKey string, contract *domain.Contract, due time.Time) *domain.Invoice {
	now := time.Now()
	return &domain.Invoice{
		TenantKey:       tenantKey,
		ClientID:        contract.ClientID,
		ContractID:      &contract.ID,
		ProgramID:       contract.ProgramID,
		AgentID:         contract.AgentID,
		IssueDate:       &now,
		DueDate:         &due,
		Value:           contract.Value,
		CommissionPct:   contract.CommissionPct,
		PaymentMethodID: contract.PaymentMethodID,
		Description:     contract.Description,
	}
}

// ============================================================
// Update — contract edit propagated to pending invoices
// ============================================================

// Update replaces a contract and propagates the billable fields (value,
// payment method, description, agent, commission) to its pending invoices.
// Paid invoices are historical records and are never touched.
func (s *ContractService) Update(ctx context.Context, tenantKey string, id int64, contract *domain.Contract) (*domain.Contract, *domain.BatchResult, error) {
	ctx, span := contractTracer.Start(ctx, "ContractService.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("contract.id", id))

	if err := validateContract(contract); err != nil {
		return nil, nil, err
	}

	contract.TenantKey = tenantKey
	updated, err := s.store.UpdateContract(ctx, id, contract)
	if err != nil {
		s.metrics.IncrExternalError("contratos")
		return nil, nil, fmt.Errorf("update contract: %w", err)
	}

	pending, err := s.store.ListPendingInvoices(ctx, tenantKey, id)
	if err != nil {
		s.metrics.IncrExternalError("faturamento")
		return nil, nil, fmt.Errorf("list pending invoices: %w", err)
	}

	result := &domain.BatchResult{}
	for _, inv := range pending {
		inv.Value = updated.Value
		inv.PaymentMethodID = updated.PaymentMethodID
		inv.Description = updated.Description
		inv.AgentID = updated.AgentID
		inv.CommissionPct = updated.CommissionPct

		_, err := s.store.UpdateInvoice(ctx, inv.ID, &inv)
		if err != nil {
			s.logger.Error("contract update: failed to propagate to invoice",
				zap.Int64("contract_id", id),
				zap.Int64("invoice_id", inv.ID),
				zap.Error(err),
			)
			s.metrics.IncrExternalError("faturamento")
		}
		result.Record(err)
	}

	return updated, result, nil
}

// ============================================================
// Cancel — remove pending invoices, then mark cancelled
// ============================================================

// Cancel removes the contract's pending invoices and then marks it
// cancelled. Deletion failures are tallied but do not stop the
// cancellation: the contract always ends up cancelled, and any stragglers
// are reported in the result.
func (s *ContractService) Cancel(ctx context.Context, tenantKey string, id int64) (*domain.BatchResult, error) {
	ctx, span := contractTracer.Start(ctx, "ContractService.Cancel")
	defer span.End()
	span.SetAttributes(attribute.Int64("contract.id", id))

	contract, err := s.store.GetContract(ctx, tenantKey, id)
	if err != nil {
		return nil, fmt.Errorf("get contract: %w", err)
	}

	pending, err := s.store.ListPendingInvoices(ctx, tenantKey, id)
	if err != nil {
		s.metrics.IncrExternalError("faturamento")
		return nil, fmt.Errorf("list pending invoices: %w", err)
	}

	result := &domain.BatchResult{}
	for _, inv := range pending {
		err := s.store.DeleteInvoice(ctx, inv.ID)
		if err != nil {
			s.logger.Error("cancel: failed to delete pending invoice",
				zap.Int64("contract_id", id),
				zap.Int64("invoice_id", inv.ID),
				zap.Error(err),
			)
			s.metrics.IncrExternalError("faturamento")
		}
		result.Record(err)
	}

	contract.Status = domain.ContractCancelled
	if _, err := s.store.UpdateContract(ctx, id, contract); err != nil {
		s.metrics.IncrExternalError("contratos")
		return result, fmt.Errorf("mark contract cancelled: %w", err)
	}

	s.logger.Info("contract cancelled",
		zap.Int64("contract_id", id),
		zap.Int("invoices_deleted", result.Succeeded),
		zap.Int("invoices_failed", result.Failed),
	)
	return result, nil
}

// Delete removes a contract entirely. The data service cascades to its
// invoices, paid ones included; cancellation is the conservative option.
func (s *ContractService) Delete(ctx context.Context, tenantKey string, id int64) error {
	ctx, span := contractTracer.Start(ctx, "ContractService.Delete")
	defer span.End()

	if err := s.store.DeleteContract(ctx, id); err != nil {
		s.metrics.IncrExternalError("contratos")
		return fmt.Errorf("delete contract: %w", err)
	}
	s.logger.Info("contract deleted", zap.Int64("contract_id", id))
	return nil
}

// ============================================================
// Single invoice generation
// ============================================================

// GenerateInvoice writes one extra invoice for the given competence month,
// due on the contract's billing day.
func (s *ContractService) GenerateInvoice(ctx context.Context, tenantKey string, id int64, month time.Month, year int) (*domain.Invoice, error) {
	ctx, span := contractTracer.Start(ctx, "ContractService.GenerateInvoice")
	defer span.End()

	if month < time.January || month > time.December {
		return nil, &domain.ErrValidation{Field: "mes", Message: "Mês inválido"}
	}
	if year < 2000 || year > 2100 {
		return nil, &domain.ErrValidation{Field: "ano", Message: "Ano inválido"}
	}

	contract, err := s.store.GetContract(ctx, tenantKey, id)
	if err != nil {
		return nil, fmt.Errorf("get contract: %w", err)
	}
	if contract.BillingDay == nil || *contract.BillingDay < 1 {
		return nil, &domain.ErrValidation{Field: "diaVencimento", Message: "Contrato não possui dia de vencimento"}
	}

	due := billing.DueDate(year, month, *contract.BillingDay)
	invoice := invoiceFromContract(tenantKey, contract, due)

	created, err := s.store.CreateInvoice(ctx, invoice)
	if err != nil {
		s.metrics.IncrExternalError("faturamento")
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	s.logger.Info("single invoice generated",
		zap.Int64("contract_id", id),
		zap.Time("due_date", due),
	)
	return created, nil
}

// ============================================================
// Validation
// ============================================================

func validateContract(contract *domain.Contract) error {
	if contract.ClientID == 0 {
		return &domain.ErrValidation{Field: "clienteId", Message: "Cliente é obrigatório"}
	}
	if contract.ProgramID == 0 {
		return &domain.ErrValidation{Field: "programaId", Message: "Programa é obrigatório"}
	}
	if contract.EndDate.IsZero() {
		return &domain.ErrValidation{Field: "dataVencimento", Message: "Data de vencimento é obrigatória"}
	}
	if contract.IssueDate != nil && contract.EndDate.Before(*contract.IssueDate) {
		return &domain.ErrValidation{Field: "dataVencimento", Message: "Data de vencimento anterior à emissão"}
	}
	if contract.Value != nil && *contract.Value < 0 {
		return &domain.ErrValidation{Field: "valor", Message: "Valor não pode ser negativo"}
	}
	if contract.CommissionPct != nil && (*contract.CommissionPct < 0 || *contract.CommissionPct > 100) {
		return &domain.ErrValidation{Field: "comissao", Message: "Comissão deve estar entre 0 e 100"}
	}
	if contract.BillingDay != nil && (*contract.BillingDay < 0 || *contract.BillingDay > 30) {
		return &domain.ErrValidation{Field: "diaVencimento", Message: "Dia de vencimento deve estar entre 0 e 30"}
	}
	return nil
}
