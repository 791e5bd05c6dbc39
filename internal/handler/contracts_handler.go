package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/dates"
	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/listing"
	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Contratos
// ============================================================

func contractFromRequest(req *domain.ContractRequest) (*domain.Contract, error) {
	contract := &domain.Contract{
		ClientID:        req.ClientID,
		ProgramID:       req.ProgramID,
		Insertions:      req.Insertions,
		Value:           req.Value,
		AgentID:         req.AgentID,
		CommissionPct:   req.CommissionPct,
		BillingDay:      req.BillingDay,
		PaymentMethodID: req.PaymentMethodID,
		Status:          req.Status,
		Description:     req.Description,
	}
	if req.IssueDate != "" {
		issue, err := dates.Parse(req.IssueDate)
		if err != nil {
			return nil, err
		}
		contract.IssueDate = &issue
	}
	if req.EndDate != "" {
		end, err := dates.Parse(req.EndDate)
		if err != nil {
			return nil, err
		}
		contract.EndDate = end
	}
	return contract, nil
}

func listContractsHandler(contracts *service.ContractService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/contratos")
		defer span.End()

		all, err := contracts.Contracts(ctx, TenantKeyFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		status := r.URL.Query().Get("status")
		if status != "" && status != "todos" {
			all = listing.Filter(all, func(c domain.Contract) bool {
				return c.Status == status
			})
		}

		query := r.URL.Query().Get("busca")
		all = listing.Filter(all, func(c domain.Contract) bool {
			if c.Client != nil && (listing.MatchFold(c.Client.LegalName, query) ||
				listing.MatchFold(c.Client.TradeName, query)) {
				return true
			}
			if c.Program != nil && listing.MatchFold(c.Program.Name, query) {
				return true
			}
			return listing.MatchFold(c.Description, query)
		})

		all = listing.SortBy(all, func(a, b domain.Contract) bool {
			return a.ID < b.ID
		}, r.URL.Query().Get("ordem") == "desc")

		page, pageSize := parsePagination(r)
		total := len(all)
		writeJSON(w, http.StatusOK, domain.ListResponse[domain.Contract]{
			Data:     listing.Page(all, page, pageSize),
			Total:    total,
			Page:     page,
			PageSize: pageSize,
			HasMore:  page*pageSize < total,
		})
	}
}

func getContractHandler(contracts *service.ContractService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/contratos/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		contract, err := contracts.Contract(ctx, TenantKeyFromContext(ctx), id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, contract)
	}
}

func createContractHandler(contracts *service.ContractService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/contratos")
		defer span.End()

		var req domain.ContractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		contract, err := contractFromRequest(&req)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		created, run, err := contracts.Create(ctx, TenantKeyFromContext(ctx), contract)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, domain.ContractResponse{
			Contract: created,
			Invoices: run,
		})
	}
}

func updateContractHandler(contracts *service.ContractService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/contratos/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var req domain.ContractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		contract, err := contractFromRequest(&req)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated, propagation, err := contracts.Update(ctx, TenantKeyFromContext(ctx), id, contract)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.ContractResponse{
			Contract: updated,
			Invoices: propagation,
		})
	}
}

func deleteContractHandler(contracts *service.ContractService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/contratos/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := contracts.Delete(ctx, TenantKeyFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func cancelContractHandler(contracts *service.ContractService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/contratos/{id}/cancelar")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := contracts.Cancel(ctx, TenantKeyFromContext(ctx), id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Contrato cancelado",
			"faturas": result,
		})
	}
}

func generateInvoiceHandler(contracts *service.ContractService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/contratos/{id}/faturas")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var req domain.GenerateInvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		invoice, err := contracts.GenerateInvoice(ctx, TenantKeyFromContext(ctx), id, time.Month(req.Month), req.Year)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, invoice)
	}
}
