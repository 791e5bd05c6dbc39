package handler

import (
	"net/http"

	"github.com/coder-muller/radio-cultura-go/internal/dates"
	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Comissões
// ============================================================

// commissionFilterFromQuery reads ?inicio=&fim=&corretor=. Dates are
// DD/MM/YYYY and bound the payment date.
func commissionFilterFromQuery(r *http.Request) (service.CommissionFilter, error) {
	var filter service.CommissionFilter
	if v := r.URL.Query().Get("inicio"); v != "" {
		from, err := dates.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if v := r.URL.Query().Get("fim"); v != "" {
		to, err := dates.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	filter.Agent = r.URL.Query().Get("corretor")
	return filter, nil
}

func commissionReportHandler(commissions *service.CommissionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/comissoes")
		defer span.End()

		filter, err := commissionFilterFromQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		report, err := commissions.Report(ctx, TenantKeyFromContext(ctx), filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}
