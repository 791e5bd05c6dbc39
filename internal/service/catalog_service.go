package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var catalogTracer = otel.Tracer("service/catalog")

// CatalogService manages the registration entities: clients, agents,
// programs and payment methods. Lists are cached per tenant; any write
// drops the affected list from the cache.
type CatalogService struct {
	store   port.DataStore
	cache   port.Cache[any]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewCatalogService creates the catalog service with all dependencies injected.
func NewCatalogService(store port.DataStore, cache port.Cache[any], metrics *observability.Metrics, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// ============================================================
// Clients
// ============================================================

// Clients lists every client of the tenant.
func (s *CatalogService) Clients(ctx context.Context, tenantKey string) ([]domain.Client, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.Clients")
	defer span.End()

	cacheKey := "clientes:" + tenantKey
	if cached, ok := s.cache.Get(cacheKey); ok {
		if clients, ok := cached.([]domain.Client); ok {
			s.metrics.IncrCacheHit("clientes")
			return clients, nil
		}
	}
	s.metrics.IncrCacheMiss("clientes")

	clients, err := s.store.ListClients(ctx, tenantKey)
	if err != nil {
		s.metrics.IncrExternalError("clientes")
		return nil, fmt.Errorf("list clients: %w", err)
	}
	s.cache.Set(cacheKey, clients)
	return clients, nil
}

// CreateClient validates and stores a new client. A CPF or CNPJ already
// registered for the tenant is rejected.
func (s *CatalogService) CreateClient(ctx context.Context, tenantKey string, client *domain.Client) (*domain.Client, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.CreateClient")
	defer span.End()

	if strings.TrimSpace(client.LegalName) == "" {
		return nil, &domain.ErrValidation{Field: "razaoSocial", Message: "Razão social é obrigatória"}
	}

	if err := s.checkDuplicateDocument(ctx, tenantKey, client, 0); err != nil {
		return nil, err
	}

	client.TenantKey = tenantKey
	created, err := s.store.CreateClient(ctx, client)
	if err != nil {
		s.metrics.IncrExternalError("clientes")
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.cache.Delete("clientes:" + tenantKey)
	s.logger.Info("client created", zap.Int64("client_id", created.ID))
	return created, nil
}

// UpdateClient replaces an existing client.
func (s *CatalogService) UpdateClient(ctx context.Context, tenantKey string, id int64, client *domain.Client) (*domain.Client, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.UpdateClient")
	defer span.End()

	if strings.TrimSpace(client.LegalName) == "" {
		return nil, &domain.ErrValidation{Field: "razaoSocial", Message: "Razão social é obrigatória"}
	}

	if err := s.checkDuplicateDocument(ctx, tenantKey, client, id); err != nil {
		return nil, err
	}

	client.TenantKey = tenantKey
	updated, err := s.store.UpdateClient(ctx, id, client)
	if err != nil {
		s.metrics.IncrExternalError("clientes")
		return nil, fmt.Errorf("update client: %w", err)
	}

	s.cache.Delete("clientes:" + tenantKey)
	return updated, nil
}

// DeleteClient removes a client.
func (s *CatalogService) DeleteClient(ctx context.Context, tenantKey string, id int64) error {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.DeleteClient")
	defer span.End()

	if err := s.store.DeleteClient(ctx, id); err != nil {
		s.metrics.IncrExternalError("clientes")
		return fmt.Errorf("delete client: %w", err)
	}
	s.cache.Delete("clientes:" + tenantKey)
	s.logger.Info("client deleted", zap.Int64("client_id", id))
	return nil
}

// checkDuplicateDocument rejects a CPF or CNPJ already used by another
// client of the tenant. selfID skips the record being edited.
func (s *CatalogService) checkDuplicateDocument(ctx context.Context, tenantKey string, client *domain.Client, selfID int64) error {
	if client.CPF == "" && client.CNPJ == "" {
		return nil
	}
	existing, err := s.store.ListClients(ctx, tenantKey)
	if err != nil {
		return fmt.Errorf("list clients for duplicate check: %w", err)
	}
	for _, other := range existing {
		if other.ID == selfID {
			continue
		}
		if client.CPF != "" && other.CPF == client.CPF {
			return &domain.ErrConflict{Message: "Já existe um cliente com este CPF"}
		}
		if client.CNPJ != "" && other.CNPJ == client.CNPJ {
			return &domain.ErrConflict{Message: "Já existe um cliente com este CNPJ"}
		}
	}
	return nil
}

// ============================================================
// Agents (corretores)
// ============================================================

// Agents lists every sales agent of the tenant.
func (s *CatalogService) Agents(ctx context.Context, tenantKey string) ([]domain.Agent, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.Agents")
	defer span.End()

	cacheKey := "corretores:" + tenantKey
	if cached, ok := s.cache.Get(cacheKey); ok {
		if agents, ok := cached.([]domain.Agent); ok {
			s.metrics.IncrCacheHit("corretores")
			return agents, nil
		}
	}
	s.metrics.IncrCacheMiss("corretores")

	agents, err := s.store.ListAgents(ctx, tenantKey)
	if err != nil {
		s.metrics.IncrExternalError("corretores")
		return nil, fmt.Errorf("list agents: %w", err)
	}
	s.cache.Set(cacheKey, agents)
	return agents, nil
}

// CreateAgent validates and stores a new agent.
func (s *CatalogService) CreateAgent(ctx context.Context, tenantKey string, agent *domain.Agent) (*domain.Agent, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.CreateAgent")
	defer span.End()

	if strings.TrimSpace(agent.Name) == "" {
		return nil, &domain.ErrValidation{Field: "nome", Message: "Nome é obrigatório"}
	}

	agent.TenantKey = tenantKey
	created, err := s.store.CreateAgent(ctx, agent)
	if err != nil {
		s.metrics.IncrExternalError("corretores")
		return nil, fmt.Errorf("create agent: %w", err)
	}
	s.cache.Delete("corretores:" + tenantKey)
	s.logger.Info("agent created", zap.Int64("agent_id", created.ID))
	return created, nil
}

// UpdateAgent replaces an existing agent.
func (s *CatalogService) UpdateAgent(ctx context.Context, tenantKey string, id int64, agent *domain.Agent) (*domain.Agent, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.UpdateAgent")
	defer span.End()

	if strings.TrimSpace(agent.Name) == "" {
		return nil, &domain.ErrValidation{Field: "nome", Message: "Nome é obrigatório"}
	}

	agent.TenantKey = tenantKey
	updated, err := s.store.UpdateAgent(ctx, id, agent)
	if err != nil {
		s.metrics.IncrExternalError("corretores")
		return nil, fmt.Errorf("update agent: %w", err)
	}
	s.cache.Delete("corretores:" + tenantKey)
	return updated, nil
}

// DeleteAgent removes an agent.
func (s *CatalogService) DeleteAgent(ctx context.Context, tenantKey string, id int64) error {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.DeleteAgent")
	defer span.End()

	if err := s.store.DeleteAgent(ctx, id); err != nil {
		s.metrics.IncrExternalError("corretores")
		return fmt.Errorf("delete agent: %w", err)
	}
	s.cache.Delete("corretores:" + tenantKey)
	return nil
}

// ============================================================
// Programs (programação)
// ============================================================

// Programs lists the broadcast schedule of the tenant.
func (s *CatalogService) Programs(ctx context.Context, tenantKey string) ([]domain.Program, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.Programs")
	defer span.End()

	cacheKey := "programacao:" + tenantKey
	if cached, ok := s.cache.Get(cacheKey); ok {
		if programs, ok := cached.([]domain.Program); ok {
			s.metrics.IncrCacheHit("programacao")
			return programs, nil
		}
	}
	s.metrics.IncrCacheMiss("programacao")

	programs, err := s.store.ListPrograms(ctx, tenantKey)
	if err != nil {
		s.metrics.IncrExternalError("programacao")
		return nil, fmt.Errorf("list programs: %w", err)
	}
	s.cache.Set(cacheKey, programs)
	return programs, nil
}

// CreateProgram validates and stores a new program.
func (s *CatalogService) CreateProgram(ctx context.Context, tenantKey string, program *domain.Program) (*domain.Program, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.CreateProgram")
	defer span.End()

	if strings.TrimSpace(program.Name) == "" {
		return nil, &domain.ErrValidation{Field: "programa", Message: "Nome do programa é obrigatório"}
	}

	program.TenantKey = tenantKey
	created, err := s.store.CreateProgram(ctx, program)
	if err != nil {
		s.metrics.IncrExternalError("programacao")
		return nil, fmt.Errorf("create program: %w", err)
	}
	s.cache.Delete("programacao:" + tenantKey)
	return created, nil
}

// UpdateProgram replaces an existing program.
func (s *CatalogService) UpdateProgram(ctx context.Context, tenantKey string, id int64, program *domain.Program) (*domain.Program, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.UpdateProgram")
	defer span.End()

	if strings.TrimSpace(program.Name) == "" {
		return nil, &domain.ErrValidation{Field: "programa", Message: "Nome do programa é obrigatório"}
	}

	program.TenantKey = tenantKey
	updated, err := s.store.UpdateProgram(ctx, id, program)
	if err != nil {
		s.metrics.IncrExternalError("programacao")
		return nil, fmt.Errorf("update program: %w", err)
	}
	s.cache.Delete("programacao:" + tenantKey)
	return updated, nil
}

// DeleteProgram removes a program.
func (s *CatalogService) DeleteProgram(ctx context.Context, tenantKey string, id int64) error {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.DeleteProgram")
	defer span.End()

	if err := s.store.DeleteProgram(ctx, id); err != nil {
		s.metrics.IncrExternalError("programacao")
		return fmt.Errorf("delete program: %w", err)
	}
	s.cache.Delete("programacao:" + tenantKey)
	return nil
}

// ============================================================
// Payment methods (formas de pagamento)
// ============================================================

// PaymentMethods lists the tenant's payment methods.
func (s *CatalogService) PaymentMethods(ctx context.Context, tenantKey string) ([]domain.PaymentMethod, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.PaymentMethods")
	defer span.End()

	cacheKey := "forma-pagamento:" + tenantKey
	if cached, ok := s.cache.Get(cacheKey); ok {
		if methods, ok := cached.([]domain.PaymentMethod); ok {
			s.metrics.IncrCacheHit("forma-pagamento")
			return methods, nil
		}
	}
	s.metrics.IncrCacheMiss("forma-pagamento")

	methods, err := s.store.ListPaymentMethods(ctx, tenantKey)
	if err != nil {
		s.metrics.IncrExternalError("forma-pagamento")
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	s.cache.Set(cacheKey, methods)
	return methods, nil
}

// CreatePaymentMethod validates and stores a new payment method.
func (s *CatalogService) CreatePaymentMethod(ctx context.Context, tenantKey string, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.CreatePaymentMethod")
	defer span.End()

	if strings.TrimSpace(method.Name) == "" {
		return nil, &domain.ErrValidation{Field: "formaPagamento", Message: "Descrição é obrigatória"}
	}

	method.TenantKey = tenantKey
	created, err := s.store.CreatePaymentMethod(ctx, method)
	if err != nil {
		s.metrics.IncrExternalError("forma-pagamento")
		return nil, fmt.Errorf("create payment method: %w", err)
	}
	s.cache.Delete("forma-pagamento:" + tenantKey)
	return created, nil
}

// UpdatePaymentMethod replaces an existing payment method.
func (s *CatalogService) UpdatePaymentMethod(ctx context.Context, tenantKey string, id int64, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.UpdatePaymentMethod")
	defer span.End()

	if strings.TrimSpace(method.Name) == "" {
		return nil, &domain.ErrValidation{Field: "formaPagamento", Message: "Descrição é obrigatória"}
	}

	method.TenantKey = tenantKey
	updated, err := s.store.UpdatePaymentMethod(ctx, id, method)
	if err != nil {
		s.metrics.IncrExternalError("forma-pagamento")
		return nil, fmt.Errorf("update payment method: %w", err)
	}
	s.cache.Delete("forma-pagamento:" + tenantKey)
	return updated, nil
}

// DeletePaymentMethod removes a payment method.
func (s *CatalogService) DeletePaymentMethod(ctx context.Context, tenantKey string, id int64) error {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.DeletePaymentMethod")
	defer span.End()

	if err := s.store.DeletePaymentMethod(ctx, id); err != nil {
		s.metrics.IncrExternalError("forma-pagamento")
		return fmt.Errorf("delete payment method: %w", err)
	}
	s.cache.Delete("forma-pagamento:" + tenantKey)
	return nil
}

// ============================================================
// Activity log
// ============================================================

// Logs lists the tenant's audit trail, newest entries included as the data
// service returns them.
func (s *CatalogService) Logs(ctx context.Context, tenantKey string) ([]domain.LogEntry, error) {
	ctx, span := catalogTracer.Start(ctx, "CatalogService.Logs")
	defer span.End()

	logs, err := s.store.ListLogs(ctx, tenantKey)
	if err != nil {
		s.metrics.IncrExternalError("logs")
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}
