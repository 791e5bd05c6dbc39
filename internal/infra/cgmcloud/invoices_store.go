package cgmcloud

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
)

// ============================================================
// Invoices (faturamento)
// ============================================================

// ListInvoices fetches every invoice of the tenant with relations expanded.
func (c *Client) ListInvoices(ctx context.Context, tenantKey string) ([]domain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.ListInvoices")
	defer span.End()
	return getList[domain.Invoice](ctx, c, "faturamento", "/faturamento/"+tenantKey)
}

// ListPendingInvoices fetches the unpaid invoices of one contract. Used by
// contract edits and cancellations, which only ever touch pending charges.
func (c *Client) ListPendingInvoices(ctx context.Context, tenantKey string, contractID int64) ([]domain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.ListPendingInvoices")
	defer span.End()
	path := fmt.Sprintf("/faturamento/%s/%d/pendentes", tenantKey, contractID)
	return getList[domain.Invoice](ctx, c, "faturamento", path)
}

// CreateInvoice stores a new invoice.
func (c *Client) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.CreateInvoice")
	defer span.End()
	return createRecord(ctx, c, "faturamento", "/faturamento", invoice)
}

// UpdateInvoice replaces an invoice record.
func (c *Client) UpdateInvoice(ctx context.Context, id int64, invoice *domain.Invoice) (*domain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.UpdateInvoice")
	defer span.End()
	return updateRecord(ctx, c, "faturamento", fmt.Sprintf("/faturamento/%d", id), invoice)
}

// RegisterPayment settles an invoice through the dedicated payment route.
func (c *Client) RegisterPayment(ctx context.Context, id int64, paidDate time.Time, paymentMethodID int64) error {
	ctx, span := tracer.Start(ctx, "CGMCloud.RegisterPayment")
	defer span.End()

	payload := map[string]any{
		"dataPagamento":    paidDate.Format(time.RFC3339),
		"formaPagamentoId": paymentMethodID,
	}
	path := fmt.Sprintf("/faturamento/%d/pagamento", id)
	if _, err := c.doSend(ctx, http.MethodPut, path, payload); err != nil {
		return &domain.ErrExternalService{Service: "cgmcloud/faturamento", Err: err}
	}
	return nil
}

// DeleteInvoice removes an invoice by id.
func (c *Client) DeleteInvoice(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "CGMCloud.DeleteInvoice")
	defer span.End()
	if err := c.doDelete(ctx, fmt.Sprintf("/faturamento/%d", id)); err != nil {
		return &domain.ErrExternalService{Service: "cgmcloud/faturamento", Err: err}
	}
	return nil
}
