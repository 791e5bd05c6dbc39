package handler

import (
	"net/http"

	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Relatórios (PDF)
// ============================================================

// reportFilterFromQuery reads ?mes=&ano=&status= for the invoice reports.
func reportFilterFromQuery(r *http.Request) service.ReportFilter {
	return service.ReportFilter{
		Month:  queryInt(r, "mes"),
		Year:   queryInt(r, "ano"),
		Status: r.URL.Query().Get("status"),
	}
}

func invoiceSummaryReportHandler(reports *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/relatorios/faturas")
		defer span.End()

		pdf, err := reports.InvoiceSummary(ctx, TenantKeyFromContext(ctx), reportFilterFromQuery(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writePDF(w, "relatorio-faturas.pdf", pdf)
	}
}

func invoiceSheetsReportHandler(reports *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/relatorios/faturas/detalhado")
		defer span.End()

		pdf, err := reports.InvoiceSheets(ctx, TenantKeyFromContext(ctx), reportFilterFromQuery(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writePDF(w, "faturas.pdf", pdf)
	}
}

func commissionPDFHandler(reports *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/relatorios/comissoes")
		defer span.End()

		filter, err := commissionFilterFromQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		pdf, err := reports.CommissionStatement(ctx, TenantKeyFromContext(ctx), filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writePDF(w, "relatorio-comissoes.pdf", pdf)
	}
}
