package service_test

import (
	"context"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
)

// mockStore implements port.DataStore with overridable function fields.
// Unset fields behave as empty successful calls.
type mockStore struct {
	listClientsFn  func(ctx context.Context, tenantKey string) ([]domain.Client, error)
	createClientFn func(ctx context.Context, client *domain.Client) (*domain.Client, error)
	updateClientFn func(ctx context.Context, id int64, client *domain.Client) (*domain.Client, error)
	deleteClientFn func(ctx context.Context, id int64) error

	listAgentsFn  func(ctx context.Context, tenantKey string) ([]domain.Agent, error)
	createAgentFn func(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	updateAgentFn func(ctx context.Context, id int64, agent *domain.Agent) (*domain.Agent, error)
	deleteAgentFn func(ctx context.Context, id int64) error

	listProgramsFn  func(ctx context.Context, tenantKey string) ([]domain.Program, error)
	createProgramFn func(ctx context.Context, program *domain.Program) (*domain.Program, error)
	updateProgramFn func(ctx context.Context, id int64, program *domain.Program) (*domain.Program, error)
	deleteProgramFn func(ctx context.Context, id int64) error

	listPaymentMethodsFn  func(ctx context.Context, tenantKey string) ([]domain.PaymentMethod, error)
	createPaymentMethodFn func(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error)
	updatePaymentMethodFn func(ctx context.Context, id int64, method *domain.PaymentMethod) (*domain.PaymentMethod, error)
	deletePaymentMethodFn func(ctx context.Context, id int64) error

	listLogsFn func(ctx context.Context, tenantKey string) ([]domain.LogEntry, error)

	listContractsFn  func(ctx context.Context, tenantKey string) ([]domain.Contract, error)
	getContractFn    func(ctx context.Context, tenantKey string, id int64) (*domain.Contract, error)
	createContractFn func(ctx context.Context, contract *domain.Contract) (*domain.Contract, error)
	updateContractFn func(ctx context.Context, id int64, contract *domain.Contract) (*domain.Contract, error)
	deleteContractFn func(ctx context.Context, id int64) error

	listInvoicesFn        func(ctx context.Context, tenantKey string) ([]domain.Invoice, error)
	listPendingInvoicesFn func(ctx context.Context, tenantKey string, contractID int64) ([]domain.Invoice, error)
	createInvoiceFn       func(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	updateInvoiceFn       func(ctx context.Context, id int64, invoice *domain.Invoice) (*domain.Invoice, error)
	registerPaymentFn     func(ctx context.Context, id int64, paidDate time.Time, paymentMethodID int64) error
	deleteInvoiceFn       func(ctx context.Context, id int64) error

	importRecordFn func(ctx context.Context, table string, record map[string]any) error
}

func (m *mockStore) ListClients(ctx context.Context, tenantKey string) ([]domain.Client, error) {
	if m.listClientsFn != nil {
		return m.listClientsFn(ctx, tenantKey)
	}
	return []domain.Client{}, nil
}

func (m *mockStore) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if m.createClientFn != nil {
		return m.createClientFn(ctx, client)
	}
	return client, nil
}

func (m *mockStore) UpdateClient(ctx context.Context, id int64, client *domain.Client) (*domain.Client, error) {
	if m.updateClientFn != nil {
		return m.updateClientFn(ctx, id, client)
	}
	return client, nil
}

func (m *mockStore) DeleteClient(ctx context.Context, id int64) error {
	if m.deleteClientFn != nil {
		return m.deleteClientFn(ctx, id)
	}
	return nil
}

func (m *mockStore) ListAgents(ctx context.Context, tenantKey string) ([]domain.Agent, error) {
	if m.listAgentsFn != nil {
		return m.listAgentsFn(ctx, tenantKey)
	}
	return []domain.Agent{}, nil
}

func (m *mockStore) CreateAgent(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	if m.createAgentFn != nil {
		return m.createAgentFn(ctx, agent)
	}
	return agent, nil
}

func (m *mockStore) UpdateAgent(ctx context.Context, id int64, agent *domain.Agent) (*domain.Agent, error) {
	if m.updateAgentFn != nil {
		return m.updateAgentFn(ctx, id, agent)
	}
	return agent, nil
}

func (m *mockStore) DeleteAgent(ctx context.Context, id int64) error {
	if m.deleteAgentFn != nil {
		return m.deleteAgentFn(ctx, id)
	}
	return nil
}

func (m *mockStore) ListPrograms(ctx context.Context, tenantKey string) ([]domain.Program, error) {
	if m.listProgramsFn != nil {
		return m.listProgramsFn(ctx, tenantKey)
	}
	return []domain.Program{}, nil
}

func (m *mockStore) CreateProgram(ctx context.Context, program *domain.Program) (*domain.Program, error) {
	if m.createProgramFn != nil {
		return m.createProgramFn(ctx, program)
	}
	return program, nil
}

func (m *mockStore) UpdateProgram(ctx context.Context, id int64, program *domain.Program) (*domain.Program, error) {
	if m.updateProgramFn != nil {
		return m.updateProgramFn(ctx, id, program)
	}
	return program, nil
}

func (m *mockStore) DeleteProgram(ctx context.Context, id int64) error {
	if m.deleteProgramFn != nil {
		return m.deleteProgramFn(ctx, id)
	}
	return nil
}

func (m *mockStore) ListPaymentMethods(ctx context.Context, tenantKey string) ([]domain.PaymentMethod, error) {
	if m.listPaymentMethodsFn != nil {
		return m.listPaymentMethodsFn(ctx, tenantKey)
	}
	return []domain.PaymentMethod{}, nil
}

func (m *mockStore) CreatePaymentMethod(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	if m.createPaymentMethodFn != nil {
		return m.createPaymentMethodFn(ctx, method)
	}
	return method, nil
}

func (m *mockStore) UpdatePaymentMethod(ctx context.Context, id int64, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	if m.updatePaymentMethodFn != nil {
		return m.updatePaymentMethodFn(ctx, id, method)
	}
	return method, nil
}

func (m *mockStore) DeletePaymentMethod(ctx context.Context, id int64) error {
	if m.deletePaymentMethodFn != nil {
		return m.deletePaymentMethodFn(ctx, id)
	}
	return nil
}

func (m *mockStore) ListLogs(ctx context.Context, tenantKey string) ([]domain.LogEntry, error) {
	if m.listLogsFn != nil {
		return m.listLogsFn(ctx, tenantKey)
	}
	return []domain.LogEntry{}, nil
}

func (m *mockStore) ListContracts(ctx context.Context, tenantKey string) ([]domain.Contract, error) {
	if m.listContractsFn != nil {
		return m.listContractsFn(ctx, tenantKey)
	}
	return []domain.Contract{}, nil
}

func (m *mockStore) GetContract(ctx context.Context, tenantKey string, id int64) (*domain.Contract, error) {
	if m.getContractFn != nil {
		return m.getContractFn(ctx, tenantKey, id)
	}
	return &domain.Contract{ID: id, TenantKey: tenantKey}, nil
}

func (m *mockStore) CreateContract(ctx context.Context, contract *domain.Contract) (*domain.Contract, error) {
	if m.createContractFn != nil {
		return m.createContractFn(ctx, contract)
	}
	return contract, nil
}

func (m *mockStore) UpdateContract(ctx context.Context, id int64, contract *domain.Contract) (*domain.Contract, error) {
	if m.updateContractFn != nil {
		return m.updateContractFn(ctx, id, contract)
	}
	return contract, nil
}

func (m *mockStore) DeleteContract(ctx context.Context, id int64) error {
	if m.deleteContractFn != nil {
		return m.deleteContractFn(ctx, id)
	}
	return nil
}

func (m *mockStore) ListInvoices(ctx context.Context, tenantKey string) ([]domain.Invoice, error) {
	if m.listInvoicesFn != nil {
		return m.listInvoicesFn(ctx, tenantKey)
	}
	return []domain.Invoice{}, nil
}

func (m *mockStore) ListPendingInvoices(ctx context.Context, tenantKey string, contractID int64) ([]domain.Invoice, error) {
	if m.listPendingInvoicesFn != nil {
		return m.listPendingInvoicesFn(ctx, tenantKey, contractID)
	}
	return []domain.Invoice{}, nil
}

func (m *mockStore) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if m.createInvoiceFn != nil {
		return m.createInvoiceFn(ctx, invoice)
	}
	return invoice, nil
}

func (m *mockStore) UpdateInvoice(ctx context.Context, id int64, invoice *domain.Invoice) (*domain.Invoice, error) {
	if m.updateInvoiceFn != nil {
		return m.updateInvoiceFn(ctx, id, invoice)
	}
	return invoice, nil
}

func (m *mockStore) RegisterPayment(ctx context.Context, id int64, paidDate time.Time, paymentMethodID int64) error {
	if m.registerPaymentFn != nil {
		return m.registerPaymentFn(ctx, id, paidDate, paymentMethodID)
	}
	return nil
}

func (m *mockStore) DeleteInvoice(ctx context.Context, id int64) error {
	if m.deleteInvoiceFn != nil {
		return m.deleteInvoiceFn(ctx, id)
	}
	return nil
}

func (m *mockStore) ImportRecord(ctx context.Context, table string, record map[string]any) error {
	if m.importRecordFn != nil {
		return m.importRecordFn(ctx, table, record)
	}
	return nil
}

// helpers shared by service tests

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrID(v int64) *int64    { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func ptrDay(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}
