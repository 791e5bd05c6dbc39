package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var invoiceTracer = otel.Tracer("service/invoice")

// InvoiceService manages the invoice ledger: listing, settling and
// removing individual charges.
type InvoiceService struct {
	store   port.DataStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewInvoiceService creates the invoice service with all dependencies injected.
func NewInvoiceService(store port.DataStore, metrics *observability.Metrics, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Invoices lists every invoice of the tenant.
func (s *InvoiceService) Invoices(ctx context.Context, tenantKey string) ([]domain.Invoice, error) {
	ctx, span := invoiceTracer.Start(ctx, "InvoiceService.Invoices")
	defer span.End()

	invoices, err := s.store.ListInvoices(ctx, tenantKey)
	if err != nil {
		s.metrics.IncrExternalError("faturamento")
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// Update replaces an invoice record, for one-off corrections of value,
// description or agent on a single charge.
func (s *InvoiceService) Update(ctx context.Context, tenantKey string, id int64, invoice *domain.Invoice) (*domain.Invoice, error) {
	ctx, span := invoiceTracer.Start(ctx, "InvoiceService.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("invoice.id", id))

	if invoice.Value != nil && *invoice.Value < 0 {
		return nil, &domain.ErrValidation{Field: "valor", Message: "Valor não pode ser negativo"}
	}

	invoice.TenantKey = tenantKey
	updated, err := s.store.UpdateInvoice(ctx, id, invoice)
	if err != nil {
		s.metrics.IncrExternalError("faturamento")
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return updated, nil
}

// RegisterPayment settles an invoice on the given date with the given
// payment method.
func (s *InvoiceService) RegisterPayment(ctx context.Context, tenantKey string, id int64, paidDate time.Time, paymentMethodID int64) error {
	ctx, span := invoiceTracer.Start(ctx, "InvoiceService.RegisterPayment")
	defer span.End()
	span.SetAttributes(attribute.Int64("invoice.id", id))

	if paymentMethodID == 0 {
		return &domain.ErrValidation{Field: "formaPagamentoId", Message: "Forma de pagamento é obrigatória"}
	}
	if paidDate.IsZero() {
		return &domain.ErrValidation{Field: "dataPagamento", Message: "Data de pagamento é obrigatória"}
	}

	if err := s.store.RegisterPayment(ctx, id, paidDate, paymentMethodID); err != nil {
		s.metrics.IncrExternalError("faturamento")
		return fmt.Errorf("register payment: %w", err)
	}

	s.logger.Info("payment registered",
		zap.Int64("invoice_id", id),
		zap.Time("paid_date", paidDate),
	)
	return nil
}

// Delete removes an invoice by id.
func (s *InvoiceService) Delete(ctx context.Context, tenantKey string, id int64) error {
	ctx, span := invoiceTracer.Start(ctx, "InvoiceService.Delete")
	defer span.End()

	if err := s.store.DeleteInvoice(ctx, id); err != nil {
		s.metrics.IncrExternalError("faturamento")
		return fmt.Errorf("delete invoice: %w", err)
	}
	s.logger.Info("invoice deleted", zap.Int64("invoice_id", id))
	return nil
}
