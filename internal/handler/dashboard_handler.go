package handler

import (
	"net/http"

	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Dashboard
// ============================================================

func dashboardHandler(dashboard *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		metrics, err := dashboard.Metrics(ctx, TenantKeyFromContext(ctx), queryInt(r, "mes"), queryInt(r, "ano"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, metrics)
	}
}
