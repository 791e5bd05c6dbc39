package handler

import (
	"encoding/json"
	"net/http"

	"github.com/coder-muller/radio-cultura-go/internal/dates"
	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/listing"
	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Faturamento
// ============================================================

func listInvoicesHandler(invoices *service.InvoiceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/faturamento")
		defer span.End()

		all, err := invoices.Invoices(ctx, TenantKeyFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		switch r.URL.Query().Get("status") {
		case "pendentes":
			all = listing.Filter(all, func(i domain.Invoice) bool { return !i.Paid() })
		case "pagas":
			all = listing.Filter(all, func(i domain.Invoice) bool { return i.Paid() })
		}

		// Due-date range, both ends optional, DD/MM/YYYY.
		if from := r.URL.Query().Get("inicio"); from != "" {
			start, err := dates.Parse(from)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			all = listing.Filter(all, func(i domain.Invoice) bool {
				return i.DueDate != nil && !i.DueDate.Before(start)
			})
		}
		if to := r.URL.Query().Get("fim"); to != "" {
			end, err := dates.Parse(to)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			all = listing.Filter(all, func(i domain.Invoice) bool {
				return i.DueDate != nil && !i.DueDate.After(end)
			})
		}

		query := r.URL.Query().Get("busca")
		all = listing.Filter(all, func(i domain.Invoice) bool {
			if i.Client != nil && (listing.MatchFold(i.Client.LegalName, query) ||
				listing.MatchFold(i.Client.TradeName, query)) {
				return true
			}
			return listing.MatchFold(i.Description, query)
		})

		all = listing.SortBy(all, func(a, b domain.Invoice) bool {
			if a.DueDate == nil || b.DueDate == nil {
				return a.ID < b.ID
			}
			return a.DueDate.Before(*b.DueDate)
		}, r.URL.Query().Get("ordem") == "desc")

		page, pageSize := parsePagination(r)
		total := len(all)
		writeJSON(w, http.StatusOK, domain.ListResponse[domain.Invoice]{
			Data:     listing.Page(all, page, pageSize),
			Total:    total,
			Page:     page,
			PageSize: pageSize,
			HasMore:  page*pageSize < total,
		})
	}
}

func updateInvoiceHandler(invoices *service.InvoiceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/faturamento/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var invoice domain.Invoice
		if err := json.NewDecoder(r.Body).Decode(&invoice); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated, err := invoices.Update(ctx, TenantKeyFromContext(ctx), id, &invoice)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func registerPaymentHandler(invoices *service.InvoiceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/faturamento/{id}/pagamento")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var req domain.PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		paidDate, err := dates.Parse(req.PaidDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := invoices.RegisterPayment(ctx, TenantKeyFromContext(ctx), id, paidDate, req.PaymentMethodID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "Pagamento registrado"})
	}
}

func deleteInvoiceHandler(invoices *service.InvoiceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/faturamento/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := invoices.Delete(ctx, TenantKeyFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
