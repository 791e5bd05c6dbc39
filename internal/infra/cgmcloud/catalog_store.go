package cgmcloud

import (
	"context"
	"fmt"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
)

// ============================================================
// Catalog entities: clients, agents, programs, payment methods
// ============================================================

// ListClients fetches every client of the tenant.
func (c *Client) ListClients(ctx context.Context, tenantKey string) ([]domain.Client, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.ListClients")
	defer span.End()
	return getList[domain.Client](ctx, c, "clientes", "/clientes/"+tenantKey)
}

// CreateClient stores a new client. The tenant key travels in the body.
func (c *Client) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.CreateClient")
	defer span.End()
	return createRecord(ctx, c, "clientes", "/clientes", client)
}

// UpdateClient replaces a client record.
func (c *Client) UpdateClient(ctx context.Context, id int64, client *domain.Client) (*domain.Client, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.UpdateClient")
	defer span.End()
	return updateRecord(ctx, c, "clientes", fmt.Sprintf("/clientes/%d", id), client)
}

// DeleteClient removes a client by id.
func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "CGMCloud.DeleteClient")
	defer span.End()
	if err := c.doDelete(ctx, fmt.Sprintf("/clientes/%d", id)); err != nil {
		return &domain.ErrExternalService{Service: "cgmcloud/clientes", Err: err}
	}
	return nil
}

// ListAgents fetches every sales agent of the tenant.
func (c *Client) ListAgents(ctx context.Context, tenantKey string) ([]domain.Agent, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.ListAgents")
	defer span.End()
	return getList[domain.Agent](ctx, c, "corretores", "/corretores/"+tenantKey)
}

// CreateAgent stores a new sales agent.
func (c *Client) CreateAgent(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.CreateAgent")
	defer span.End()
	return createRecord(ctx, c, "corretores", "/corretores", agent)
}

// UpdateAgent replaces an agent record.
func (c *Client) UpdateAgent(ctx context.Context, id int64, agent *domain.Agent) (*domain.Agent, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.UpdateAgent")
	defer span.End()
	return updateRecord(ctx, c, "corretores", fmt.Sprintf("/corretores/%d", id), agent)
}

// DeleteAgent removes an agent by id.
func (c *Client) DeleteAgent(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "CGMCloud.DeleteAgent")
	defer span.End()
	if err := c.doDelete(ctx, fmt.Sprintf("/corretores/%d", id)); err != nil {
		return &domain.ErrExternalService{Service: "cgmcloud/corretores", Err: err}
	}
	return nil
}

// ListPrograms fetches the broadcast schedule of the tenant.
func (c *Client) ListPrograms(ctx context.Context, tenantKey string) ([]domain.Program, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.ListPrograms")
	defer span.End()
	return getList[domain.Program](ctx, c, "programacao", "/programacao/"+tenantKey)
}

// CreateProgram stores a new program.
func (c *Client) CreateProgram(ctx context.Context, program *domain.Program) (*domain.Program, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.CreateProgram")
	defer span.End()
	return createRecord(ctx, c, "programacao", "/programacao", program)
}

// UpdateProgram replaces a program record.
func (c *Client) UpdateProgram(ctx context.Context, id int64, program *domain.Program) (*domain.Program, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.UpdateProgram")
	defer span.End()
	return updateRecord(ctx, c, "programacao", fmt.Sprintf("/programacao/%d", id), program)
}

// DeleteProgram removes a program by id.
func (c *Client) DeleteProgram(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "CGMCloud.DeleteProgram")
	defer span.End()
	if err := c.doDelete(ctx, fmt.Sprintf("/programacao/%d", id)); err != nil {
		return &domain.ErrExternalService{Service: "cgmcloud/programacao", Err: err}
	}
	return nil
}

// ListPaymentMethods fetches the tenant's payment methods.
func (c *Client) ListPaymentMethods(ctx context.Context, tenantKey string) ([]domain.PaymentMethod, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.ListPaymentMethods")
	defer span.End()
	return getList[domain.PaymentMethod](ctx, c, "forma-pagamento", "/forma-pagamento/"+tenantKey)
}

// CreatePaymentMethod stores a new payment method.
func (c *Client) CreatePaymentMethod(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.CreatePaymentMethod")
	defer span.End()
	return createRecord(ctx, c, "forma-pagamento", "/forma-pagamento", method)
}

// UpdatePaymentMethod replaces a payment method record.
func (c *Client) UpdatePaymentMethod(ctx context.Context, id int64, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.UpdatePaymentMethod")
	defer span.End()
	return updateRecord(ctx, c, "forma-pagamento", fmt.Sprintf("/forma-pagamento/%d", id), method)
}

// DeletePaymentMethod removes a payment method by id.
func (c *Client) DeletePaymentMethod(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "CGMCloud.DeletePaymentMethod")
	defer span.End()
	if err := c.doDelete(ctx, fmt.Sprintf("/forma-pagamento/%d", id)); err != nil {
		return &domain.ErrExternalService{Service: "cgmcloud/forma-pagamento", Err: err}
	}
	return nil
}

// ListLogs fetches the tenant's audit trail. The data service appends to it
// on every mutation, so the back office only ever reads.
func (c *Client) ListLogs(ctx context.Context, tenantKey string) ([]domain.LogEntry, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.ListLogs")
	defer span.End()
	return getList[domain.LogEntry](ctx, c, "logs", "/logs/"+tenantKey)
}
