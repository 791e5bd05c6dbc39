package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/coder-muller/radio-cultura-go/internal/dates"
	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/listing"
	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Clientes
// ============================================================

// clientDisplay decorates a client with the formatted document and phone the
// list screens show.
type clientDisplay struct {
	domain.Client
	FormattedCPF   string `json:"cpfFormatado,omitempty"`
	FormattedCNPJ  string `json:"cnpjFormatado,omitempty"`
	FormattedPhone string `json:"foneFormatado,omitempty"`
}

func listClientsHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/clientes")
		defer span.End()

		clients, err := catalog.Clients(ctx, TenantKeyFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		query := r.URL.Query().Get("busca")
		clients = listing.Filter(clients, func(c domain.Client) bool {
			return listing.MatchFold(c.LegalName, query) ||
				listing.MatchFold(c.TradeName, query) ||
				listing.MatchFold(c.CPF, query) ||
				listing.MatchFold(c.CNPJ, query)
		})
		clients = listing.SortBy(clients, func(a, b domain.Client) bool {
			return strings.ToLower(a.LegalName) < strings.ToLower(b.LegalName)
		}, r.URL.Query().Get("ordem") == "desc")

		page, pageSize := parsePagination(r)
		total := len(clients)
		pageItems := listing.Page(clients, page, pageSize)

		data := make([]clientDisplay, 0, len(pageItems))
		for _, c := range pageItems {
			data = append(data, clientDisplay{
				Client:         c,
				FormattedCPF:   formatDocument("cpf", c.CPF),
				FormattedCNPJ:  formatDocument("cnpj", c.CNPJ),
				FormattedPhone: formatDocument("phone", c.Phone),
			})
		}

		writeJSON(w, http.StatusOK, domain.ListResponse[clientDisplay]{
			Data:     data,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
			HasMore:  page*pageSize < total,
		})
	}
}

func createClientHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/clientes")
		defer span.End()

		var client domain.Client
		if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := catalog.CreateClient(ctx, TenantKeyFromContext(ctx), &client)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateClientHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/clientes/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var client domain.Client
		if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated, err := catalog.UpdateClient(ctx, TenantKeyFromContext(ctx), id, &client)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteClientHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/clientes/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := catalog.DeleteClient(ctx, TenantKeyFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Corretores
// ============================================================

func listAgentsHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/corretores")
		defer span.End()

		agents, err := catalog.Agents(ctx, TenantKeyFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		query := r.URL.Query().Get("busca")
		agents = listing.Filter(agents, func(a domain.Agent) bool {
			return listing.MatchFold(a.Name, query) || listing.MatchFold(a.Email, query)
		})
		agents = listing.SortBy(agents, func(a, b domain.Agent) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}, false)

		writeJSON(w, http.StatusOK, agents)
	}
}

func agentFromRequest(req *domain.AgentRequest) (*domain.Agent, error) {
	agent := &domain.Agent{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if req.HiredAt != "" {
		hired, err := dates.Parse(req.HiredAt)
		if err != nil {
			return nil, err
		}
		agent.HiredAt = &hired
	}
	return agent, nil
}

func createAgentHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/corretores")
		defer span.End()

		var req domain.AgentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		agent, err := agentFromRequest(&req)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		created, err := catalog.CreateAgent(ctx, TenantKeyFromContext(ctx), agent)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateAgentHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/corretores/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var req domain.AgentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		agent, err := agentFromRequest(&req)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := catalog.UpdateAgent(ctx, TenantKeyFromContext(ctx), id, agent)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteAgentHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/corretores/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := catalog.DeleteAgent(ctx, TenantKeyFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Programação
// ============================================================

func listProgramsHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/programacao")
		defer span.End()

		programs, err := catalog.Programs(ctx, TenantKeyFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		query := r.URL.Query().Get("busca")
		programs = listing.Filter(programs, func(p domain.Program) bool {
			return listing.MatchFold(p.Name, query) || listing.MatchFold(p.Presenter, query)
		})
		programs = listing.SortBy(programs, func(a, b domain.Program) bool {
			return a.StartTime < b.StartTime
		}, false)

		writeJSON(w, http.StatusOK, programs)
	}
}

func createProgramHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/programacao")
		defer span.End()

		var program domain.Program
		if err := json.NewDecoder(r.Body).Decode(&program); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := catalog.CreateProgram(ctx, TenantKeyFromContext(ctx), &program)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateProgramHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/programacao/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var program domain.Program
		if err := json.NewDecoder(r.Body).Decode(&program); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated, err := catalog.UpdateProgram(ctx, TenantKeyFromContext(ctx), id, &program)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteProgramHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/programacao/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := catalog.DeleteProgram(ctx, TenantKeyFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Formas de pagamento
// ============================================================

func listPaymentMethodsHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/forma-pagamento")
		defer span.End()

		methods, err := catalog.PaymentMethods(ctx, TenantKeyFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, methods)
	}
}

func createPaymentMethodHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/forma-pagamento")
		defer span.End()

		var method domain.PaymentMethod
		if err := json.NewDecoder(r.Body).Decode(&method); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := catalog.CreatePaymentMethod(ctx, TenantKeyFromContext(ctx), &method)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updatePaymentMethodHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/forma-pagamento/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var method domain.PaymentMethod
		if err := json.NewDecoder(r.Body).Decode(&method); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated, err := catalog.UpdatePaymentMethod(ctx, TenantKeyFromContext(ctx), id, &method)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deletePaymentMethodHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/forma-pagamento/{id}")
		defer span.End()

		id, err := idParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := catalog.DeletePaymentMethod(ctx, TenantKeyFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Logs
// ============================================================

func listLogsHandler(catalog *service.CatalogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/logs")
		defer span.End()

		logs, err := catalog.Logs(ctx, TenantKeyFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		// Newest first, the way the settings screen shows them.
		logs = listing.SortBy(logs, func(a, b domain.LogEntry) bool {
			if a.CreatedAt == nil || b.CreatedAt == nil {
				return a.ID < b.ID
			}
			return a.CreatedAt.Before(*b.CreatedAt)
		}, true)

		page, pageSize := parsePagination(r)
		total := len(logs)
		writeJSON(w, http.StatusOK, domain.ListResponse[domain.LogEntry]{
			Data:     listing.Page(logs, page, pageSize),
			Total:    total,
			Page:     page,
			PageSize: pageSize,
			HasMore:  page*pageSize < total,
		})
	}
}
