// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// DataStore defines all operations against the CGM Cloud data service.
// Every read is scoped by the tenant key; deletes address records by id
// alone, matching the service's routes.
type DataStore interface {
	// Clients
	ListClients(ctx context.Context, tenantKey string) ([]domain.Client, error)
	CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	UpdateClient(ctx context.Context, id int64, client *domain.Client) (*domain.Client, error)
	DeleteClient(ctx context.Context, id int64) error

	// Agents (corretores)
	ListAgents(ctx context.Context, tenantKey string) ([]domain.Agent, error)
	CreateAgent(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	UpdateAgent(ctx context.Context, id int64, agent *domain.Agent) (*domain.Agent, error)
	DeleteAgent(ctx context.Context, id int64) error

	// Programs (programação)
	ListPrograms(ctx context.Context, tenantKey string) ([]domain.Program, error)
	CreateProgram(ctx context.Context, program *domain.Program) (*domain.Program, error)
	UpdateProgram(ctx context.Context, id int64, program *domain.Program) (*domain.Program, error)
	DeleteProgram(ctx context.Context, id int64) error

	// Payment methods (formas de pagamento)
	ListPaymentMethods(ctx context.Context, tenantKey string) ([]domain.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id int64, method *domain.PaymentMethod) (*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id int64) error

	// Activity log
	ListLogs(ctx context.Context, tenantKey string) ([]domain.LogEntry, error)

	// Contracts
	ListContracts(ctx context.Context, tenantKey string) ([]domain.Contract, error)
	GetContract(ctx context.Context, tenantKey string, id int64) (*domain.Contract, error)
	CreateContract(ctx context.Context, contract *domain.Contract) (*domain.Contract, error)
	UpdateContract(ctx context.Context, id int64, contract *domain.Contract) (*domain.Contract, error)
	DeleteContract(ctx context.Context, id int64) error

	// Invoices (faturamento)
	ListInvoices(ctx context.Context, tenantKey string) ([]domain.Invoice, error)
	ListPendingInvoices(ctx context.Context, tenantKey string, contractID int64) ([]domain.Invoice, error)
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, id int64, invoice *domain.Invoice) (*domain.Invoice, error)
	RegisterPayment(ctx context.Context, id int64, paidDate time.Time, paymentMethodID int64) error
	DeleteInvoice(ctx context.Context, id int64) error

	// Raw record import (dev tooling)
	ImportRecord(ctx context.Context, table string, record map[string]any) error
}
