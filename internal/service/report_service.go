package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/coder-muller/radio-cultura-go/internal/dates"
	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/port"
)

var reportTracer = otel.Tracer("service/report")

// Station letterhead printed on every charge sheet.
const (
	stationName    = "Rádio Cultura Canguçu Ltda"
	stationStreet  = "Rua Professor André Puente, 203"
	stationCity    = "CEP: 96600-000 - Canguçu, Rio Grande do Sul, Brasil"
	stationCNPJ    = "CNPJ: 25.043.065/0001-45"
	stationPhone   = "Telefone: (53) 3252-1144 / (53) 9 9952-1144"
	stationEmail   = "E-mail: culturaam1030@gmail.com"
	acknowledgment = "Reconheço(emos) a exatidão desta Duplicata de Prestação de Serviço na importância acima que pagarei(emos) à Rádio Cultura Canguçu Ltda. no vencimento acima indicado."
)

// ReportService renders the printable PDF surfaces: the invoice listing
// report, the per-invoice charge sheets and the commission statement.
type ReportService struct {
	store       port.DataStore
	commissions *CommissionService
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewReportService creates the report service with all dependencies injected.
func NewReportService(store port.DataStore, commissions *CommissionService, metrics *observability.Metrics, logger *zap.Logger) *ReportService {
	return &ReportService{
		store:       store,
		commissions: commissions,
		metrics:     metrics,
		logger:      logger,
	}
}

// ReportFilter narrows which invoices enter a report. A zero Month or Year
// means no period restriction; Status is "pendente", "pago" or empty.
type ReportFilter struct {
	Month  int
	Year   int
	Status string
}

func (f ReportFilter) matches(inv domain.Invoice) bool {
	switch f.Status {
	case "pendente":
		if inv.Paid() {
			return false
		}
	case "pago":
		if !inv.Paid() {
			return false
		}
	}
	if f.Month >= 1 && f.Month <= 12 && f.Year > 0 {
		if inv.DueDate == nil {
			return false
		}
		if int(inv.DueDate.Month()) != f.Month || inv.DueDate.Year() != f.Year {
			return false
		}
	}
	return true
}

// InvoiceSummary renders the invoice listing report: one table row per
// invoice with client, due date, payment date and value, plus a total line.
func (s *ReportService) InvoiceSummary(ctx context.Context, tenantKey string, filter ReportFilter) ([]byte, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.InvoiceSummary")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("report_invoice_summary", time.Since(start))
	}()

	invoices, err := s.fetchInvoices(ctx, tenantKey, filter)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr("Relatório de Faturas"))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 8, "Cliente", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Vencimento", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Pagamento", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Valor", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	total := 0.0
	for _, inv := range invoices {
		paid := "Pendente"
		if inv.PaidDate != nil {
			paid = dates.Format(*inv.PaidDate)
		}
		pdf.CellFormat(80, 7, tr(clientLabel(inv.Client)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, dates.FormatPtr(inv.DueDate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, paid, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, tr(formatBRL(inv.Amount())), "1", 1, "R", false, 0, "")
		total += inv.Amount()
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(140, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, tr(formatBRL(total)), "1", 1, "R", false, 0, "")

	return output(pdf)
}

// InvoiceSheets renders one charge sheet (duplicata) per invoice, each on
// its own page, with the station letterhead, the client block, the billing
// figures and the signature lines.
func (s *ReportService) InvoiceSheets(ctx context.Context, tenantKey string, filter ReportFilter) ([]byte, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.InvoiceSheets")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("report_invoice_sheets", time.Since(start))
	}()

	invoices, err := s.fetchInvoices(ctx, tenantKey, filter)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, &domain.ErrNotFound{Resource: "fatura"}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, inv := range invoices {
		pdf.AddPage()
		writeChargeSheet(pdf, tr, inv)
	}
	return output(pdf)
}

// CommissionStatement renders the commission statement for the given filter.
// When the filter names a single agent the sheet ends with a signed receipt.
func (s *ReportService) CommissionStatement(ctx context.Context, tenantKey string, filter CommissionFilter) ([]byte, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.CommissionStatement")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("report_commissions", time.Since(start))
	}()

	report, err := s.commissions.Report(ctx, tenantKey, filter)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr("Controle de Comissões"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	if filter.Agent != "" {
		pdf.Cell(40, 8, tr("Corretor: "+filter.Agent))
	} else {
		pdf.Cell(40, 8, "Todos os Corretores")
	}
	pdf.Ln(8)
	if period := periodLabel(filter); period != "" {
		pdf.Cell(40, 8, tr(period))
		pdf.Ln(8)
	}
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(50, 8, "Corretor", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Cliente", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Programa", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Pagamento", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Valor", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, tr("Comissão %"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, tr("Comissão"), "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, row := range report.Rows {
		pdf.CellFormat(50, 7, tr(row.AgentName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, tr(row.ClientName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, tr(row.ProgramName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, row.PaidDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, tr(formatBRL(row.Value)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.1f%%", row.CommissionPct), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, tr(formatBRL(row.Commission)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(245, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, tr(formatBRL(report.TotalCommission)), "1", 1, "R", false, 0, "")

	if filter.Agent != "" {
		pdf.Ln(15)
		pdf.SetFont("Arial", "", 10)
		receipt := fmt.Sprintf(
			"Eu, %s, recebi da Rádio Cultura AM Ltda. a quantia de %s, referente à comissão das faturas acima quitadas.",
			filter.Agent, formatBRL(report.TotalCommission))
		pdf.MultiCell(0, 6, tr(receipt), "", "L", false)
		pdf.Ln(20)
		pdf.CellFormat(0, 6, "Assinatura do Corretor", "T", 1, "C", false, 0, "")
	}

	return output(pdf)
}

func (s *ReportService) fetchInvoices(ctx context.Context, tenantKey string, filter ReportFilter) ([]domain.Invoice, error) {
	all, err := s.store.ListInvoices(ctx, tenantKey)
	if err != nil {
		s.logger.Error("report: failed to fetch invoices", zap.Error(err))
		s.metrics.IncrExternalError("faturamento")
		return nil, err
	}
	out := make([]domain.Invoice, 0, len(all))
	for _, inv := range all {
		if filter.matches(inv) {
			out = append(out, inv)
		}
	}
	return out, nil
}

// writeChargeSheet lays out a single duplicata. The layout mirrors the paper
// form the station hands to clients: letterhead, client block, billing
// figures, agent line and the acknowledgment with signatures.
func writeChargeSheet(pdf *gofpdf.Fpdf, tr func(string) string, inv domain.Invoice) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 7, tr(stationName))
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 9)
	for _, line := range []string{stationStreet, stationCity, stationCNPJ, stationPhone, stationEmail} {
		pdf.Cell(0, 5, tr(line))
		pdf.Ln(5)
	}
	hr(pdf)

	labeled := func(w float64, label, value string) {
		x, y := pdf.GetX(), pdf.GetY()
		pdf.SetFont("Arial", "", 8)
		pdf.Cell(w, 4, tr(label))
		pdf.SetXY(x, y+4)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(w, 6, tr(value))
		pdf.SetXY(x+w, y)
	}

	client := inv.Client
	if client == nil {
		client = &domain.Client{}
	}

	labeled(95, "Cliente:", clientLabel(inv.Client))
	labeled(95, "Fone:", client.Phone)
	pdf.Ln(11)
	labeled(95, "Endereço:", client.Street)
	labeled(95, "CEP:", client.PostalCode)
	pdf.Ln(11)
	labeled(95, "Município:", client.City)
	labeled(95, "Estado:", client.State)
	pdf.Ln(11)
	labeled(95, "CNPJ:", client.CNPJ)
	labeled(95, "Divulgação:", programLabel(inv.Program))
	pdf.Ln(12)
	hr(pdf)

	labeled(48, "Data de Emissão:", dates.FormatPtr(inv.IssueDate))
	labeled(48, "Data de Vencimento:", dates.FormatPtr(inv.DueDate))
	labeled(48, "Fatura N°:", fmt.Sprintf("%d", inv.ID))
	labeled(46, "Valor:", formatBRL(inv.Amount()))
	pdf.Ln(12)
	hr(pdf)

	description := inv.Description
	if inv.Contract != nil && inv.Contract.Description != "" {
		description = inv.Contract.Description
	}
	if description == "" {
		description = "Sem descrição"
	}
	agent := domain.AgentUnassigned
	if inv.Agent != nil {
		agent = inv.Agent.Name
	}
	labeled(95, "Corretor:", agent)
	labeled(95, "Descrição:", description)
	pdf.Ln(12)
	hr(pdf)

	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, tr(acknowledgment), "", "L", false)
	pdf.Ln(20)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(95, 6, "Assinatura do Emitente", "T", 0, "C", false, 0, "")
	pdf.SetX(pdf.GetX() + 10)
	pdf.CellFormat(85, 6, "Assinatura do Sacado", "T", 1, "C", false, 0, "")
}

func hr(pdf *gofpdf.Fpdf) {
	pdf.Ln(2)
	x, y := pdf.GetX(), pdf.GetY()
	pdf.Line(x, y, 200, y)
	pdf.Ln(3)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf render: %w", err)
	}
	return buf.Bytes(), nil
}

func clientLabel(c *domain.Client) string {
	if c == nil {
		return ""
	}
	if c.TradeName != "" {
		return c.TradeName
	}
	return c.LegalName
}

func programLabel(p *domain.Program) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func periodLabel(filter CommissionFilter) string {
	switch {
	case filter.From != nil && filter.To != nil:
		return fmt.Sprintf("Período: %s a %s", dates.Format(*filter.From), dates.Format(*filter.To))
	case filter.From != nil:
		return "Período: a partir de " + dates.Format(*filter.From)
	case filter.To != nil:
		return "Período: até " + dates.Format(*filter.To)
	}
	return ""
}

// formatBRL renders a monetary value the way pt-BR locales do, with a dot
// as the thousands separator and a comma before the cents.
func formatBRL(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := fmt.Sprintf("%.2f", v)
	intPart := whole[:len(whole)-3]
	cents := whole[len(whole)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), cents)
}
