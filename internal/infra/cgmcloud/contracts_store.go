package cgmcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
)

// ============================================================
// Contracts
// ============================================================

// ListContracts fetches every contract of the tenant with its relations
// (client, program, agent, payment method, invoices) expanded.
func (c *Client) ListContracts(ctx context.Context, tenantKey string) ([]domain.Contract, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.ListContracts")
	defer span.End()
	return getList[domain.Contract](ctx, c, "contratos", "/contratos/"+tenantKey)
}

// GetContract fetches a single contract of the tenant.
func (c *Client) GetContract(ctx context.Context, tenantKey string, id int64) (*domain.Contract, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.GetContract")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("/contratos/%s/%d", tenantKey, id))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "cgmcloud/contratos", Err: err}
	}
	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "contrato", ID: strconv.FormatInt(id, 10)}
	}

	var contract domain.Contract
	if err := json.Unmarshal(body, &contract); err != nil {
		return nil, &domain.ErrExternalService{
			Service: "cgmcloud/contratos",
			Err:     fmt.Errorf("failed to decode contrato: %w", err),
		}
	}
	return &contract, nil
}

// CreateContract stores a new contract and returns the stored row with its
// assigned id. Invoice generation is the service layer's job, not ours.
func (c *Client) CreateContract(ctx context.Context, contract *domain.Contract) (*domain.Contract, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.CreateContract")
	defer span.End()
	return createRecord(ctx, c, "contratos", "/contratos", contract)
}

// UpdateContract replaces a contract record.
func (c *Client) UpdateContract(ctx context.Context, id int64, contract *domain.Contract) (*domain.Contract, error) {
	ctx, span := tracer.Start(ctx, "CGMCloud.UpdateContract")
	defer span.End()
	return updateRecord(ctx, c, "contratos", fmt.Sprintf("/contratos/%d", id), contract)
}

// DeleteContract removes a contract by id. The data service cascades the
// removal to the contract's invoices.
func (c *Client) DeleteContract(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "CGMCloud.DeleteContract")
	defer span.End()
	if err := c.doDelete(ctx, fmt.Sprintf("/contratos/%d", id)); err != nil {
		return &domain.ErrExternalService{Service: "cgmcloud/contratos", Err: err}
	}
	return nil
}

// ============================================================
// Raw import (dev tooling)
// ============================================================

// ImportRecord forwards one raw record from a legacy XML dump. Most tables
// go through the service's dev routes, which preserve the dumped ids and
// skip the consistency checks regular writes enforce.
func (c *Client) ImportRecord(ctx context.Context, table string, record map[string]any) error {
	ctx, span := tracer.Start(ctx, "CGMCloud.ImportRecord")
	defer span.End()

	// Imported rows bypass the audit log through the dev endpoints, except
	// invoices, which go through the regular path so pending totals stay right.
	path := "/dev/" + table
	if table == "faturamento" {
		path = "/" + table
	}
	if _, err := c.doSend(ctx, http.MethodPost, path, record); err != nil {
		return &domain.ErrExternalService{Service: "cgmcloud/" + table, Err: err}
	}
	return nil
}
